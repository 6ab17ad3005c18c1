package mongo

import (
	"context"
	"log/slog"
	"time"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type accountDocument struct {
	ID        string    `bson:"id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toDocument(account *entity.Account) accountDocument {
	return accountDocument{
		ID:        account.ID.String(),
		Username:  account.Username,
		Email:     account.Email,
		Password:  account.PasswordHash,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func (d accountDocument) toEntity() (*entity.Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored account has malformed id %q", d.ID)
	}

	return &entity.Account{
		ID:           id,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

// EnsureIndexes creates the unique indexes that make id, username and email
// unique across the collection. It is idempotent.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_id")},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
	}

	if _, err := collection.Indexes().CreateMany(ctx, models); err != nil {
		return errors.Wrap(err, "failed to create account indexes")
	}

	return nil
}

type accountRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
	now        func() time.Time
}

// NewAccountRepository creates an account repository over the given collection.
func NewAccountRepository(collection *mongo.Collection, logger *slog.Logger) repository.AccountRepository {
	return &accountRepository{
		collection: collection,
		logger:     logger,
		now:        time.Now,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	now := r.now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, toDocument(account)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateAccount
		}
		r.logger.ErrorContext(ctx, "failed to insert account", slog.Any("error", err))

		return errors.Wrap(err, "failed to insert account")
	}

	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"id": id.String()})
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *accountRepository) findOne(ctx context.Context, filter bson.M) (*entity.Account, error) {
	var doc accountDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAccountNotFound
		}
		r.logger.ErrorContext(ctx, "failed to find account", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find account")
	}

	return doc.toEntity()
}

func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	account.UpdatedAt = r.now().UTC()

	update := bson.M{
		"$set": bson.M{
			"username":  account.Username,
			"email":     account.Email,
			"password":  account.PasswordHash,
			"updatedAt": account.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"id": account.ID.String()}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateAccount
		}
		r.logger.ErrorContext(ctx, "failed to update account", slog.Any("error", err))

		return errors.Wrap(err, "failed to update account")
	}
	if result.MatchedCount == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"id": id.String()}); err != nil {
		r.logger.ErrorContext(ctx, "failed to delete account", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete account")
	}

	return nil
}

func (r *accountRepository) ListUsernames(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: "username", Value: 1}}).
		SetSort(bson.D{{Key: "username", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to list accounts", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list accounts")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Username string `bson:"username"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode accounts")
	}

	usernames := make([]string, 0, len(rows))
	for _, row := range rows {
		usernames = append(usernames, row.Username)
	}

	return usernames, nil
}
