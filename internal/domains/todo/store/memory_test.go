package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keel/internal/domains/todo/model"
	"keel/internal/domains/todo/store"
)

func seedTodos(t *testing.T, st store.Todo, ownerID string, n int) []model.Todo {
	t.Helper()

	items := make([]model.Todo, n)
	for i := range n {
		items[i] = model.Todo{
			OwnerID:   ownerID,
			TodoID:    fmt.Sprintf("todo-%03d", i),
			Name:      fmt.Sprintf("task %d", i),
			DueDate:   "2025-12-31",
			CreatedAt: fmt.Sprintf("2025-06-01T10:%02d:00Z", i),
		}

		require.NoError(t, st.Insert(context.Background(), items[i]))
	}

	return items
}

func TestMemoryStore_PaginationWalksAllItems(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	seeded := seedTodos(t, st, "owner-1", 5)

	var (
		collected []model.Todo
		after     store.Position
		pageSizes []int
	)

	for {
		page, next, err := st.ListPage(ctx, "owner-1", after, 2)
		require.NoError(t, err)

		collected = append(collected, page...)
		pageSizes = append(pageSizes, len(page))

		if next == nil {
			break
		}

		after = next
	}

	assert.Equal(t, []int{2, 2, 1}, pageSizes)

	require.Len(t, collected, len(seeded))
	for i, item := range collected {
		assert.Equal(t, seeded[i].TodoID, item.TodoID, "items must come back in creation order")
	}
}

func TestMemoryStore_ListPageNoNextOnExactBoundary(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	seedTodos(t, st, "owner-1", 4)

	page, next, err := st.ListPage(ctx, "owner-1", nil, 4)

	require.NoError(t, err)
	assert.Len(t, page, 4)
	assert.Nil(t, next, "a page that exhausts the scan must not advertise another one")
}

func TestMemoryStore_OwnerIsolation(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	seedTodos(t, st, "owner-1", 3)
	seedTodos(t, st, "owner-2", 2)

	page, next, err := st.ListPage(ctx, "owner-1", nil, 10)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, page, 3)

	for _, item := range page {
		assert.Equal(t, "owner-1", item.OwnerID)
	}

	found, err := st.GetByID(ctx, "owner-2", "todo-000")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "owner-2", found.OwnerID)

	count, err := st.Count(ctx, "owner-2")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryStore_GetByIDAbsent(t *testing.T) {
	st := store.NewMemory()

	found, err := st.GetByID(context.Background(), "owner-1", "no-such-todo")

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	seedTodos(t, st, "owner-1", 1)

	require.NoError(t, st.Delete(ctx, "owner-1", "todo-000"))
	require.NoError(t, st.Delete(ctx, "owner-1", "todo-000"))

	count, err := st.Count(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryStore_UpdateMissingItem(t *testing.T) {
	st := store.NewMemory()

	_, err := st.Update(context.Background(), "owner-1", "no-such-todo", store.Fields{
		Name:    "renamed",
		DueDate: "2026-01-01",
		Done:    true,
	})

	require.Error(t, err)
	assert.True(t, store.IsConditionalCheckFailed(err))
}

func TestMemoryStore_UpdateOverwritesMutableFields(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	seeded := seedTodos(t, st, "owner-1", 1)

	updated, err := st.Update(ctx, "owner-1", seeded[0].TodoID, store.Fields{
		Name:    "renamed",
		DueDate: "2026-01-01",
		Done:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "2026-01-01", updated.DueDate)
	assert.True(t, updated.Done)
	assert.Equal(t, seeded[0].CreatedAt, updated.CreatedAt, "created_at is immutable")
}

func TestMemoryStore_SetAttachmentURLMissingItem(t *testing.T) {
	st := store.NewMemory()

	err := st.SetAttachmentURL(context.Background(), "owner-1", "no-such-todo", "https://cdn.example.com/key")

	require.Error(t, err)
	assert.True(t, store.IsConditionalCheckFailed(err))
}

func TestMemoryStore_ResumeAfterPositionedItemDeleted(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	seeded := seedTodos(t, st, "owner-1", 5)

	page, next, err := st.ListPage(ctx, "owner-1", nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)

	// The item the cursor points at disappears between pages.
	require.NoError(t, st.Delete(ctx, "owner-1", seeded[1].TodoID))

	page, _, err = st.ListPage(ctx, "owner-1", next, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, seeded[2].TodoID, page[0].TodoID)
	assert.Equal(t, seeded[3].TodoID, page[1].TodoID)
}
