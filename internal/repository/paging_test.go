package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"society_hub/internal/domain"
)

func TestReverseChrono(t *testing.T) {
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	// Выборка DESC: самое свежее первым
	messages := []*domain.Message{
		{Content: "third", CreatedAt: base.Add(2 * time.Minute)},
		{Content: "second", CreatedAt: base.Add(time.Minute)},
		{Content: "first", CreatedAt: base},
	}

	reverseChrono(messages)

	require.Equal(t, "first", messages[0].Content)
	require.Equal(t, "second", messages[1].Content)
	require.Equal(t, "third", messages[2].Content)
	for i := 1; i < len(messages); i++ {
		require.True(t, messages[i-1].CreatedAt.Before(messages[i].CreatedAt))
	}
}

func TestReverseChronoEdgeSizes(t *testing.T) {
	var empty []*domain.GroupMessage
	reverseChrono(empty)
	require.Empty(t, empty)

	single := []*domain.GroupMessage{{Content: "only"}}
	reverseChrono(single)
	require.Equal(t, "only", single[0].Content)

	pair := []*domain.GroupMessage{{Content: "b"}, {Content: "a"}}
	reverseChrono(pair)
	require.Equal(t, "a", pair[0].Content)
	require.Equal(t, "b", pair[1].Content)
}
