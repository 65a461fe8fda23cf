package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"keel/infras/otel/mocks"
	s3Mocks "keel/infras/s3/mocks"
	"keel/internal/domains/todo/model/dto"
	"keel/internal/domains/todo/service"
	"keel/internal/domains/todo/store"
	storeMocks "keel/internal/domains/todo/store/mocks"
	"keel/shared/failure"
)

func newService(t *testing.T) (service.Todo, store.Todo, *s3Mocks.MockAttachments) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	st := store.NewMemory()
	attachments := s3Mocks.NewMockAttachments(ctrl)

	return service.New(st, attachments, mocks.NewOtel()), st, attachments
}

func createTodo(t *testing.T, svc service.Todo, ownerID, name string) dto.TodoResponse {
	t.Helper()

	created, err := svc.Create(context.Background(), ownerID, dto.CreateTodoRequest{
		Name:    name,
		DueDate: "2025-12-31",
	})
	require.NoError(t, err)

	return created
}

func TestTodoService_List(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		createTodo(t, svc, "owner-1", name)
	}

	page, err := svc.List(ctx, "owner-1", "", 2)
	require.NoError(t, err)
	require.Len(t, page.Todos, 2)
	assert.Equal(t, "first", page.Todos[0].Name)
	assert.Equal(t, "second", page.Todos[1].Name)
	assert.Equal(t, 3, page.TotalData)
	require.NotEmpty(t, page.NextCursor)

	page, err = svc.List(ctx, "owner-1", page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Todos, 1)
	assert.Equal(t, "third", page.Todos[0].Name)
	assert.Empty(t, page.NextCursor)
}

func TestTodoService_ListEmptyOwner(t *testing.T) {
	svc, _, _ := newService(t)

	page, err := svc.List(context.Background(), "owner-without-items", "", 4)

	require.NoError(t, err)
	assert.Empty(t, page.Todos)
	assert.Empty(t, page.NextCursor)
	assert.Zero(t, page.TotalData)
}

func TestTodoService_ListInvalidLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations on the store: a rejected limit must not reach it.
	mockStore := storeMocks.NewMockTodo(ctrl)
	attachments := s3Mocks.NewMockAttachments(ctrl)

	svc := service.New(mockStore, attachments, mocks.NewOtel())

	for _, limit := range []int{0, -1, -100} {
		_, err := svc.List(context.Background(), "owner-1", "", limit)

		require.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindInvalidParameter))
	}
}

func TestTodoService_ListMalformedCursor(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.List(context.Background(), "owner-1", "not-a-cursor", 4)

	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindMalformedCursor))
}

func TestTodoService_GetNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Get(context.Background(), "owner-1", "no-such-todo")

	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestTodoService_GetWrongOwner(t *testing.T) {
	svc, _, _ := newService(t)

	created := createTodo(t, svc, "owner-1", "private task")

	_, err := svc.Get(context.Background(), "owner-2", created.TodoID)

	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindNotFound), "another owner's item must be indistinguishable from a missing one")
}

func TestTodoService_Update(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created := createTodo(t, svc, "owner-1", "original")

	updated, err := svc.Update(ctx, "owner-1", created.TodoID, dto.UpdateTodoRequest{
		Name:    "renamed",
		DueDate: "2026-01-01",
		Done:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, created.TodoID, updated.TodoID)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "2026-01-01", updated.DueDate)
	assert.True(t, updated.Done)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestTodoService_UpdateNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Update(context.Background(), "owner-1", "no-such-todo", dto.UpdateTodoRequest{
		Name:    "renamed",
		DueDate: "2026-01-01",
	})

	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestTodoService_Delete(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created := createTodo(t, svc, "owner-1", "doomed")

	require.NoError(t, svc.Delete(ctx, "owner-1", created.TodoID))

	_, err := svc.Get(ctx, "owner-1", created.TodoID)
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestTodoService_DeleteNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.Delete(context.Background(), "owner-1", "no-such-todo")

	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestTodoService_DeleteCleansUpAttachment(t *testing.T) {
	svc, _, attachments := newService(t)
	ctx := context.Background()

	created := createTodo(t, svc, "owner-1", "with attachment")

	attachments.EXPECT().PublicURL(gomock.Any()).Return("https://cdn.example.com/blob-key")
	attachments.EXPECT().PresignUpload(gomock.Any(), gomock.Any()).Return("https://bucket.example.com/upload", nil)

	_, err := svc.RequestAttachmentUpload(ctx, "owner-1", created.TodoID)
	require.NoError(t, err)

	attachments.EXPECT().ObjectKeyFromURL("https://cdn.example.com/blob-key").Return("blob-key")
	attachments.EXPECT().DeleteObject(gomock.Any(), "blob-key").Return(nil)

	require.NoError(t, svc.Delete(ctx, "owner-1", created.TodoID))
}

func TestTodoService_DeleteSurvivesBlobFailure(t *testing.T) {
	svc, _, attachments := newService(t)
	ctx := context.Background()

	created := createTodo(t, svc, "owner-1", "with broken attachment")

	attachments.EXPECT().PublicURL(gomock.Any()).Return("https://cdn.example.com/blob-key")
	attachments.EXPECT().PresignUpload(gomock.Any(), gomock.Any()).Return("https://bucket.example.com/upload", nil)

	_, err := svc.RequestAttachmentUpload(ctx, "owner-1", created.TodoID)
	require.NoError(t, err)

	attachments.EXPECT().ObjectKeyFromURL("https://cdn.example.com/blob-key").Return("blob-key")
	attachments.EXPECT().DeleteObject(gomock.Any(), "blob-key").Return(errors.New("bucket unavailable"))

	require.NoError(t, svc.Delete(ctx, "owner-1", created.TodoID), "a blob store failure must not block deletion")

	_, err = svc.Get(ctx, "owner-1", created.TodoID)
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestTodoService_RequestAttachmentUpload(t *testing.T) {
	svc, _, attachments := newService(t)
	ctx := context.Background()

	created := createTodo(t, svc, "owner-1", "needs attachment")

	attachments.EXPECT().PublicURL(gomock.Any()).Return("https://cdn.example.com/blob-key")
	attachments.EXPECT().PresignUpload(gomock.Any(), gomock.Any()).Return("https://bucket.example.com/upload", nil)

	res, err := svc.RequestAttachmentUpload(ctx, "owner-1", created.TodoID)

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/upload", res.UploadURL)
	assert.Equal(t, "https://cdn.example.com/blob-key", res.AttachmentURL)

	item, err := svc.Get(ctx, "owner-1", created.TodoID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/blob-key", item.AttachmentURL, "the public url is persisted before the upload happens")
}

func TestTodoService_RequestAttachmentUploadNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.RequestAttachmentUpload(context.Background(), "owner-1", "no-such-todo")

	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}
