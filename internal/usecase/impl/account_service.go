// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// publishTimeout bounds how long a request waits on the event publisher.
const publishTimeout = 2 * time.Second

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time

	publishTimeout time.Duration
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,

		publishTimeout: publishTimeout,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account. Uniqueness is left to the store.
func (srv *accountService) Register(ctx context.Context, input usecase.SignUpInput) error {
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account := &entity.Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			srv.log(ctx).Info("Registration rejected, account exists", slog.String("username", input.Username))

			return domainerrors.ErrAccountAlreadyExists.WrapMessage("register")
		}
		srv.log(ctx).Error("Failed to create account", slog.Any("error", err))

		return domainerrors.NewStoreUnavailableError(err, "create account")
	}

	srv.log(ctx).Info("Account registered", slog.String("accountID", account.ID.String()))
	srv.publish(ctx, service.AccountRegistered, account.ID)

	return nil
}

// Authenticate verifies an email/password pair and mints a session token.
func (srv *accountService) Authenticate(ctx context.Context, input usecase.SignInInput) (*usecase.SignInOutput, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("authenticate")
		}
		srv.log(ctx).Error("Failed to find account by email", slog.Any("error", err))

		return nil, domainerrors.NewStoreUnavailableError(err, "find account by email")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Info("Password mismatch", slog.String("accountID", account.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("authenticate")
	}

	token, err := srv.tokenService.IssueToken(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return &usecase.SignInOutput{
		AccessToken: token,
		ExpiresIn:   srv.tokenService.TokenTTL(),
	}, nil
}

// Edit applies the supplied fields to the account, re-hashing a new password.
func (srv *accountService) Edit(ctx context.Context, accountID uuid.UUID, changes entity.AccountChanges) error {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("edit")
		}
		srv.log(ctx).Error("Failed to find account by id", slog.Any("error", err))

		return domainerrors.NewStoreUnavailableError(err, "find account by id")
	}

	if changes.IsEmpty() {
		return nil
	}

	if changes.Username != nil {
		account.Username = *changes.Username
	}
	if changes.Email != nil {
		account.Email = *changes.Email
	}
	if changes.Password != nil {
		passwordHash, err := srv.hasher.Hash(*changes.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during edit", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		account.PasswordHash = passwordHash
	}

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateAccount):
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("edit")
		case errors.Is(err, repository.ErrAccountNotFound):
			return domainerrors.ErrAccountNotFound.WrapMessage("edit")
		}
		srv.log(ctx).Error("Failed to update account", slog.Any("error", err))

		return domainerrors.NewStoreUnavailableError(err, "update account")
	}

	srv.log(ctx).Info("Account updated", slog.String("accountID", accountID.String()))
	srv.publish(ctx, service.AccountUpdated, accountID)

	return nil
}

// Delete removes the account; a missing account is still a success.
func (srv *accountService) Delete(ctx context.Context, accountID uuid.UUID) error {
	if err := srv.accountRepo.DeleteByID(ctx, accountID); err != nil {
		srv.log(ctx).Error("Failed to delete account", slog.Any("error", err))

		return domainerrors.NewStoreUnavailableError(err, "delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.String("accountID", accountID.String()))
	srv.publish(ctx, service.AccountDeleted, accountID)

	return nil
}

func (srv *accountService) ListUsernames(ctx context.Context) ([]string, error) {
	usernames, err := srv.accountRepo.ListUsernames(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list usernames", slog.Any("error", err))

		return nil, domainerrors.NewStoreUnavailableError(err, "list usernames")
	}

	return usernames, nil
}

// publish is best-effort: the mutation has already been persisted.
func (srv *accountService) publish(ctx context.Context, eventType service.AccountEventType, accountID uuid.UUID) {
	event := &service.AccountEvent{
		EventID:    uuid.NewString(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		AccountID:  accountID.String(),
		OccurredAt: srv.now().UTC(),
	}

	publishCtx, cancel := context.WithTimeout(ctx, srv.publishTimeout)
	defer cancel()

	if err := srv.publisher.PublishAccountEvent(publishCtx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account event",
			slog.String("eventType", string(eventType)),
			slog.Any("error", err),
		)
	}
}
