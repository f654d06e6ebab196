package db

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

func TestCreateTopic(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	t.Run("creates and reloads", func(t *testing.T) {
		topic, err := database.CreateTopic(ctx, "AAPL")
		require.NoError(t, err)
		assert.Positive(t, topic.ID)
		assert.Equal(t, "AAPL", topic.Keyword)
		assert.False(t, topic.CreatedAt.IsZero())
		assert.False(t, topic.UpdatedAt.IsZero())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		topic, err := database.CreateTopic(ctx, "  quantum computing  ")
		require.NoError(t, err)
		assert.Equal(t, "quantum computing", topic.Keyword)
	})

	t.Run("duplicate is case-insensitive", func(t *testing.T) {
		_, err := database.CreateTopic(ctx, "aapl")
		require.ErrorIs(t, err, domain.ErrDuplicateTopic)

		_, err = database.CreateTopic(ctx, "AAPL")
		require.ErrorIs(t, err, domain.ErrDuplicateTopic)
	})

	t.Run("rejects empty keyword", func(t *testing.T) {
		_, err := database.CreateTopic(ctx, "   ")
		require.ErrorIs(t, err, domain.ErrInvalidKeyword)
	})

	t.Run("rejects keyword over 255 runes", func(t *testing.T) {
		_, err := database.CreateTopic(ctx, strings.Repeat("я", 256))
		require.ErrorIs(t, err, domain.ErrInvalidKeyword)

		_, err = database.CreateTopic(ctx, strings.Repeat("я", 255))
		require.NoError(t, err, "255 runes is the inclusive maximum")
	})
}

func TestCreateTopic_Limit(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < domain.MaxTopics; i++ {
		_, err := database.CreateTopic(ctx, fmt.Sprintf("topic-%02d", i))
		require.NoError(t, err)
	}

	_, err := database.CreateTopic(ctx, "one-too-many")
	require.ErrorIs(t, err, domain.ErrTopicLimit)

	// freeing a slot makes room again
	topics, err := database.ListTopics(ctx)
	require.NoError(t, err)
	require.NoError(t, database.DeleteTopic(ctx, topics[0].ID))

	_, err = database.CreateTopic(ctx, "fits-now")
	require.NoError(t, err)
}

func TestListTopics(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	topics, err := database.ListTopics(ctx)
	require.NoError(t, err)
	assert.Empty(t, topics)
	assert.NotNil(t, topics, "empty registry lists as [], not null")

	first, err := database.CreateTopic(ctx, "first")
	require.NoError(t, err)
	second, err := database.CreateTopic(ctx, "second")
	require.NoError(t, err)

	topics, err = database.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, second.ID, topics[0].ID, "newest first")
	assert.Equal(t, first.ID, topics[1].ID)
}

func TestGetTopic(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	created, err := database.CreateTopic(ctx, "lookup")
	require.NoError(t, err)

	topic, err := database.GetTopic(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "lookup", topic.Keyword)

	_, err = database.GetTopic(ctx, 99999)
	require.ErrorIs(t, err, domain.ErrTopicNotFound)
}

func TestUpdateTopic(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	created, err := database.CreateTopic(ctx, "before")
	require.NoError(t, err)
	other, err := database.CreateTopic(ctx, "taken")
	require.NoError(t, err)

	t.Run("updates keyword", func(t *testing.T) {
		updated, err := database.UpdateTopic(ctx, created.ID, "after")
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Keyword)
		assert.Equal(t, created.ID, updated.ID)
	})

	t.Run("rejects keyword held by another topic", func(t *testing.T) {
		_, err := database.UpdateTopic(ctx, created.ID, "TAKEN")
		require.ErrorIs(t, err, domain.ErrDuplicateTopic)
	})

	t.Run("allows re-saving own keyword with different case", func(t *testing.T) {
		updated, err := database.UpdateTopic(ctx, other.ID, "Taken")
		require.NoError(t, err)
		assert.Equal(t, "Taken", updated.Keyword)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := database.UpdateTopic(ctx, 99999, "whatever")
		require.ErrorIs(t, err, domain.ErrTopicNotFound)
	})

	t.Run("invalid keyword", func(t *testing.T) {
		_, err := database.UpdateTopic(ctx, created.ID, "")
		require.ErrorIs(t, err, domain.ErrInvalidKeyword)
	})
}

func TestDeleteTopic(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	created, err := database.CreateTopic(ctx, "doomed")
	require.NoError(t, err)

	require.NoError(t, database.DeleteTopic(ctx, created.ID))

	_, err = database.GetTopic(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrTopicNotFound)

	err = database.DeleteTopic(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrTopicNotFound)
}
