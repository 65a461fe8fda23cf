package dto_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keel/internal/domains/todo/model"
	"keel/internal/domains/todo/model/dto"
	"keel/shared/constant"
)

func TestCreateTodoRequest_ToModel(t *testing.T) {
	req := dto.CreateTodoRequest{
		Name:    "buy milk",
		DueDate: "2025-12-31",
	}

	item := req.ToModel("owner-1")

	assert.Equal(t, "owner-1", item.OwnerID)
	assert.Equal(t, "buy milk", item.Name)
	assert.Equal(t, "2025-12-31", item.DueDate)
	assert.False(t, item.Done, "new items start not done")
	assert.Empty(t, item.AttachmentURL)

	_, err := uuid.Parse(item.TodoID)
	assert.NoError(t, err, "todo id must be a generated uuid")

	_, err = time.Parse(constant.DateFormat, item.CreatedAt)
	assert.NoError(t, err, "created_at must be a parseable timestamp")
}

func TestCreateTodoRequest_ToModelUniqueIDs(t *testing.T) {
	req := dto.CreateTodoRequest{Name: "a", DueDate: "2025-12-31"}

	first := req.ToModel("owner-1")
	second := req.ToModel("owner-1")

	assert.NotEqual(t, first.TodoID, second.TodoID)
}

func TestUpdateTodoRequest_ToFields(t *testing.T) {
	req := dto.UpdateTodoRequest{
		Name:    "renamed",
		DueDate: "2026-01-01",
		Done:    true,
	}

	fields := req.ToFields()

	assert.Equal(t, "renamed", fields.Name)
	assert.Equal(t, "2026-01-01", fields.DueDate)
	assert.True(t, fields.Done)
}

func TestTodoPageResponse_FromModels(t *testing.T) {
	models := []model.Todo{
		{TodoID: "todo-1", Name: "first", DueDate: "2025-12-31", CreatedAt: "2025-06-01T10:00:00Z"},
		{TodoID: "todo-2", Name: "second", DueDate: "2025-12-31", Done: true, CreatedAt: "2025-06-01T10:01:00Z", AttachmentURL: "https://cdn.example.com/key"},
	}

	res := dto.TodoPageResponse{}
	res.FromModels(models, "next-token", 7)

	assert.Equal(t, "next-token", res.NextCursor)
	assert.Equal(t, 7, res.TotalData)
	require.Len(t, res.Todos, 2)
	assert.Equal(t, "todo-1", res.Todos[0].TodoID)
	assert.Equal(t, "https://cdn.example.com/key", res.Todos[1].AttachmentURL)
	assert.True(t, res.Todos[1].Done)
}

func TestTodoPageResponse_FromModelsEmptyPage(t *testing.T) {
	res := dto.TodoPageResponse{}
	res.FromModels(nil, "", 0)

	assert.NotNil(t, res.Todos, "an empty page still serializes as an empty array")
	assert.Empty(t, res.Todos)
	assert.Empty(t, res.NextCursor)
}
