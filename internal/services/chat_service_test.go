package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bee-edu/askbee/internal/core"
)

func TestChatService_AppendAndList(t *testing.T) {
	db := newFakeDB()
	svc := NewChatService(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := svc.Append(ctx, "user-1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i), "")
		require.NoError(t, err)
	}
	// another user's records must not leak into the listing
	require.NoError(t, svc.Append(ctx, "user-2", "other", "other", ""))

	records, err := svc.ListRecent(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, 5)

	for i, rec := range records {
		assert.Equal(t, fmt.Sprintf("q%d", i), rec.Question, "insertion order must be preserved")
		assert.Equal(t, "user-1", rec.UserID)
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	}
}

func TestChatService_AppendAllowsEmptyAnswerAndError(t *testing.T) {
	db := newFakeDB()
	svc := NewChatService(db)

	require.NoError(t, svc.Append(context.Background(), "user-1", "q", "", ""))
	require.Len(t, db.chats, 1)
	assert.Empty(t, db.chats[0].Answer)
	assert.Empty(t, db.chats[0].Error)
}

func TestChatService_AppendRequiresOwner(t *testing.T) {
	svc := NewChatService(newFakeDB())
	assert.Error(t, svc.Append(context.Background(), "", "q", "a", ""))
}

func TestChatService_ListCapped(t *testing.T) {
	db := newFakeDB()
	svc := NewChatService(db)
	ctx := context.Background()

	for i := 0; i < HistoryLimit+20; i++ {
		require.NoError(t, svc.Append(ctx, "user-1", fmt.Sprintf("q%d", i), "", ""))
	}

	records, err := svc.ListRecent(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, HistoryLimit)

	// the cap keeps the most recent records, oldest first
	assert.Equal(t, "q20", records[0].Question)
	assert.Equal(t, fmt.Sprintf("q%d", HistoryLimit+19), records[len(records)-1].Question)
}

func TestChatService_StoreDown(t *testing.T) {
	db := newFakeDB()
	db.down = true
	svc := NewChatService(db)

	err := svc.Append(context.Background(), "user-1", "q", "a", "")
	assert.ErrorIs(t, err, core.ErrUnavailable)

	_, err = svc.ListRecent(context.Background(), "user-1")
	assert.ErrorIs(t, err, core.ErrUnavailable)
}
