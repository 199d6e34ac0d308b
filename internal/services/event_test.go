package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"guestgate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &mockEventRepository{}
		svc := NewEventService(repo, time.Second)

		event, err := svc.CreateEvent(ctx, "Launch Party", nil)
		require.NoError(t, err)
		require.NotZero(t, event.ID)
		assert.Equal(t, "Launch Party", event.Name)
		assert.False(t, event.CreatedAt.IsZero())
	})

	t.Run("blank name", func(t *testing.T) {
		repo := &mockEventRepository{}
		svc := NewEventService(repo, time.Second)

		for _, name := range []string{"", "   ", "\t"} {
			_, err := svc.CreateEvent(ctx, name, nil)
			require.ErrorIs(t, err, domain.ErrInvalidInput, "name %q", name)
		}
		assert.Empty(t, repo.events, "no event may be created on invalid input")
	})

	t.Run("with date", func(t *testing.T) {
		repo := &mockEventRepository{}
		svc := NewEventService(repo, time.Second)

		date := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
		event, err := svc.CreateEvent(ctx, "Launch Party", &date)
		require.NoError(t, err)
		require.NotNil(t, event.Date)
		assert.True(t, event.Date.Equal(date))
	})

	t.Run("repo error", func(t *testing.T) {
		repo := &mockEventRepository{createErr: errors.New("db down")}
		svc := NewEventService(repo, time.Second)

		_, err := svc.CreateEvent(ctx, "Launch Party", nil)
		require.Error(t, err)
	})
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("empty list is not nil", func(t *testing.T) {
		svc := NewEventService(&mockEventRepository{}, time.Second)
		events, err := svc.ListEvents(ctx)
		require.NoError(t, err)
		require.NotNil(t, events)
		assert.Empty(t, events)
	})

	t.Run("repo error", func(t *testing.T) {
		svc := NewEventService(&mockEventRepository{listErr: errors.New("db down")}, time.Second)
		_, err := svc.ListEvents(ctx)
		require.Error(t, err)
	})
}
