package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"accounts/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestGormLogger(cfg *config.Config) (*gormSlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := newGormSlogLogger(base, cfg).(*gormSlogLogger)

	return l, buf
}

func TestGormSlogLogger_Trace(t *testing.T) {
	begin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("failed query is logged", func(t *testing.T) {
		l, buf := newTestGormLogger(&config.Config{})
		l.now = func() time.Time { return begin.Add(time.Millisecond) }

		l.Trace(context.Background(), begin, sqlFn, errors.New("boom"))

		assert.Contains(t, buf.String(), "gorm query failed")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, buf := newTestGormLogger(&config.Config{})
		l.now = func() time.Time { return begin.Add(time.Millisecond) }

		l.Trace(context.Background(), begin, sqlFn, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow query warns", func(t *testing.T) {
		l, buf := newTestGormLogger(&config.Config{})
		l.now = func() time.Time { return begin.Add(time.Second) }

		l.Trace(context.Background(), begin, sqlFn, nil)

		assert.Contains(t, buf.String(), "gorm slow query")
	})

	t.Run("statements only at debug", func(t *testing.T) {
		quiet, quietBuf := newTestGormLogger(&config.Config{})
		quiet.now = func() time.Time { return begin.Add(time.Millisecond) }
		quiet.Trace(context.Background(), begin, sqlFn, nil)
		assert.Empty(t, quietBuf.String())

		cfg := &config.Config{}
		cfg.Env.Log.Level = "debug"
		verbose, verboseBuf := newTestGormLogger(cfg)
		verbose.now = func() time.Time { return begin.Add(time.Millisecond) }
		verbose.Trace(context.Background(), begin, sqlFn, nil)
		assert.Contains(t, verboseBuf.String(), "SELECT 1")
	})
}
