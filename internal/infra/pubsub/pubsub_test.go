package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.AccountEvent {
	return &service.AccountEvent{
		EventID:    "evt-1",
		RequestID:  "req-1",
		Type:       service.AccountRegistered,
		AccountID:  "acc-1",
		OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PublishAccountEvent(t *testing.T) {
	var (
		received  PushMessage
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	require.NoError(t, publisher.PublishAccountEvent(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.Equal(t, "account.registered", received.Message.Attributes["event_type"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var event service.AccountEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "acc-1", event.AccountID)
	assert.Equal(t, service.AccountRegistered, event.Type)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	err := publisher.PublishAccountEvent(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNewEventPublisher(t *testing.T) {
	newParams := func(cfg *config.PubSubConfig) PublisherParams {
		return PublisherParams{
			Lc:     fxtest.NewLifecycle(t),
			Ctx:    context.Background(),
			Config: &config.Config{PubSub: cfg},
			Logger: discardLogger(),
		}
	}

	t.Run("unconfigured uses noop", func(t *testing.T) {
		publisher, err := NewEventPublisher(newParams(nil))
		require.NoError(t, err)
		assert.IsType(t, &noopPublisher{}, publisher)
		assert.NoError(t, publisher.PublishAccountEvent(context.Background(), testEvent()))
	})

	t.Run("local", func(t *testing.T) {
		publisher, err := NewEventPublisher(newParams(&config.PubSubConfig{
			Provider:      config.PubSubProviderLocal,
			LocalEndpoint: "http://localhost:9/push",
		}))
		require.NoError(t, err)
		assert.IsType(t, &localHTTPPublisher{}, publisher)
	})

	t.Run("local without endpoint", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(&config.PubSubConfig{Provider: config.PubSubProviderLocal}))
		assert.Error(t, err)
	})

	t.Run("google without topic", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(&config.PubSubConfig{
			Provider:  config.PubSubProviderGoogle,
			ProjectID: "p",
		}))
		assert.ErrorContains(t, err, "topic ID")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(&config.PubSubConfig{Provider: "kafka"}))
		assert.ErrorContains(t, err, "unknown pubsub provider")
	})
}
