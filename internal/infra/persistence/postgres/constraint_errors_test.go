package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "translated gorm error", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped translated gorm error", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), want: true},
		{name: "raw unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "uniq_accounts_email"}, want: true},
		{name: "other pg error", err: &pgconn.PgError{Code: "23502"}, want: false},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
		{name: "plain error", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintViolation(tt.err))
		})
	}
}
