package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/university-service/internal/models"
)

func TestWatermillPublisher_PublishesJSONEnvelope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "university.accounts")
	require.NoError(t, err)

	publisher := newWatermillEventPublisher(pubSub, "university.accounts", logger)

	account := models.NewAccount(models.User{ID: 8, Email: "a@x.edu"}, &models.Student{StudentID: "S8"})
	event := NewAccountEvent(AccountUpdated, account, "major")
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, AccountUpdated, msg.Metadata.Get("event_type"))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, EventSource, got["source"])
		assert.Equal(t, EventVersion, got["version"])

		data := got["data"].(map[string]interface{})
		assert.Equal(t, float64(8), data["account_id"])
		assert.Equal(t, "student", data["role"])
		assert.Equal(t, []interface{}{"major"}, data["fields"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := NewMockEventPublisher(logger)
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, NewEvent(AccountLoggedIn, nil)))
	events := mock.GetPublishedEvents()
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())

	mock.FailWith(io.ErrUnexpectedEOF)
	assert.Error(t, mock.Publish(ctx, NewEvent(AccountDeleted, nil)))
}
