package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"keel/infras/otel"
	"keel/infras/s3"
	"keel/internal/domains/todo/cursor"
	"keel/internal/domains/todo/model/dto"
	"keel/internal/domains/todo/store"
	"keel/shared/constant"
	"keel/shared/failure"
)

const msgTodoNotFound = "todo not found"

// Todo composes the store, the cursor codec and the attachment blob store
// into the user-facing operations. Every operation takes the trusted owner
// id resolved upstream; ownership and existence are checked here before any
// mutation reaches the store.
type Todo interface {
	List(ctx context.Context, ownerID, cursorToken string, limit int) (dto.TodoPageResponse, error)
	Create(ctx context.Context, ownerID string, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	Get(ctx context.Context, ownerID, todoID string) (dto.TodoResponse, error)
	Update(ctx context.Context, ownerID, todoID string, req dto.UpdateTodoRequest) (dto.TodoResponse, error)
	Delete(ctx context.Context, ownerID, todoID string) error
	RequestAttachmentUpload(ctx context.Context, ownerID, todoID string) (dto.AttachmentUploadResponse, error)
}

type serviceImpl struct {
	store       store.Todo
	attachments s3.Attachments
	otel        otel.Otel
}

func New(st store.Todo, attachments s3.Attachments, otl otel.Otel) Todo {
	return &serviceImpl{
		store:       st,
		attachments: attachments,
		otel:        otl,
	}
}

// List returns one page of the owner's items in creation order. The total is
// taken by an independent count query and may be stale relative to the page
// under concurrent writes; the store offers no snapshot across the two reads.
func (s *serviceImpl) List(ctx context.Context, ownerID, cursorToken string, limit int) (res dto.TodoPageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	if limit <= 0 {
		return res, failure.InvalidParameter("limit must be a positive integer") //nolint:wrapcheck
	}

	after, err := cursor.Decode(cursorToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode pagination cursor")

		return res, err
	}

	items, next, err := s.store.ListPage(ctx, ownerID, after, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list todos")

		return res, err
	}

	total, err := s.store.Count(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to count todos")

		return res, err
	}

	nextToken, err := cursor.Encode(next)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode pagination cursor")

		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.FromModels(items, nextToken, total)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, ownerID string, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	item := req.ToModel(ownerID)

	if err = s.store.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, err
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, ownerID, todoID string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	item, err := s.store.GetByID(ctx, ownerID, todoID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo")

		return res, err
	}

	if item == nil {
		return res, failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	res.FromModel(*item)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, ownerID, todoID string, req dto.UpdateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	item, err := s.store.GetByID(ctx, ownerID, todoID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if todo exists")

		return res, err
	}

	if item == nil {
		return res, failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	updated, err := s.store.Update(ctx, ownerID, todoID, req.ToFields())
	if err != nil {
		// The item can vanish between the existence check and the write.
		if store.IsConditionalCheckFailed(err) {
			return res, failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update todo")

		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

// Delete removes the item. Cleanup of an uploaded attachment blob is
// best-effort: a blob store failure is logged and swallowed, never allowed
// to block deletion of the primary record.
func (s *serviceImpl) Delete(ctx context.Context, ownerID, todoID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	item, err := s.store.GetByID(ctx, ownerID, todoID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if todo exists")

		return err
	}

	if item == nil {
		return failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	if item.AttachmentURL != constant.Empty {
		objectKey := s.attachments.ObjectKeyFromURL(item.AttachmentURL)
		if objectKey == constant.Empty {
			log.Warn().Str("url", item.AttachmentURL).Msg("failed to derive object key from attachment url")
		} else if err := s.attachments.DeleteObject(ctx, objectKey); err != nil {
			log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete attachment blob, continuing with todo deletion")
		}
	}

	if err = s.store.Delete(ctx, ownerID, todoID); err != nil {
		log.Error().Err(err).Msg("failed to delete todo")

		return err
	}

	return nil
}

// RequestAttachmentUpload allocates a fresh blob key, persists its public
// URL on the item and returns a short-lived write URL for the same key.
func (s *serviceImpl) RequestAttachmentUpload(ctx context.Context, ownerID, todoID string) (res dto.AttachmentUploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestAttachmentUpload")
	defer scope.End()
	defer scope.TraceIfError(err)

	item, err := s.store.GetByID(ctx, ownerID, todoID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if todo exists")

		return res, err
	}

	if item == nil {
		return res, failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	objectKey := uuid.NewString()
	attachmentURL := s.attachments.PublicURL(objectKey)

	if err = s.store.SetAttachmentURL(ctx, ownerID, todoID, attachmentURL); err != nil {
		if store.IsConditionalCheckFailed(err) {
			return res, failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to persist attachment url")

		return res, err
	}

	uploadURL, err := s.attachments.PresignUpload(ctx, objectKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to presign attachment upload")

		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.UploadURL = uploadURL
	res.AttachmentURL = attachmentURL

	return res, nil
}
