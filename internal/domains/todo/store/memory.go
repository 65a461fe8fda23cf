package store

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"keel/internal/domains/todo/model"
	"keel/shared/failure"
)

// memoryStore implements Todo with the same observable semantics as the
// DynamoDB store: per-owner creation order, bounded pages, a resume position
// shaped like the index key, and conditional-write failures on updates of
// missing items. It backs tests and local development.
type memoryStore struct {
	mu    sync.Mutex
	items map[string][]model.Todo
}

func NewMemory() Todo {
	return &memoryStore{
		items: map[string][]model.Todo{},
	}
}

func (s *memoryStore) GetByID(_ context.Context, ownerID, todoID string) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items[ownerID] {
		if item.TodoID == todoID {
			found := item

			return &found, nil
		}
	}

	return nil, nil
}

func (s *memoryStore) Insert(_ context.Context, item model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.OwnerID] = append(s.items[item.OwnerID], item)

	return nil
}

func (s *memoryStore) Update(_ context.Context, ownerID, todoID string, fields Fields) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.items[ownerID]
	for i := range owned {
		if owned[i].TodoID == todoID {
			owned[i].Name = fields.Name
			owned[i].DueDate = fields.DueDate
			owned[i].Done = fields.Done

			return owned[i], nil
		}
	}

	return model.Todo{}, failure.StoreWrite(&types.ConditionalCheckFailedException{
		Message: aws.String("item does not exist"),
	})
}

func (s *memoryStore) SetAttachmentURL(_ context.Context, ownerID, todoID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.items[ownerID]
	for i := range owned {
		if owned[i].TodoID == todoID {
			owned[i].AttachmentURL = url

			return nil
		}
	}

	return failure.StoreWrite(&types.ConditionalCheckFailedException{
		Message: aws.String("item does not exist"),
	})
}

func (s *memoryStore) Delete(_ context.Context, ownerID, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.items[ownerID]
	for i := range owned {
		if owned[i].TodoID == todoID {
			s.items[ownerID] = append(owned[:i:i], owned[i+1:]...)

			return nil
		}
	}

	return nil
}

func (s *memoryStore) ListPage(_ context.Context, ownerID string, after Position, limit int) ([]model.Todo, Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.items[ownerID]
	start := resumeIndex(owned, after)

	end := start + limit
	if end > len(owned) {
		end = len(owned)
	}

	page := make([]model.Todo, end-start)
	copy(page, owned[start:end])

	var next Position
	if end < len(owned) {
		next = positionOf(owned[end-1])
	}

	return page, next, nil
}

func (s *memoryStore) Count(_ context.Context, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items[ownerID]), nil
}

func positionOf(item model.Todo) Position {
	return Position{
		model.FieldOwnerID:   &types.AttributeValueMemberS{Value: item.OwnerID},
		model.FieldTodoID:    &types.AttributeValueMemberS{Value: item.TodoID},
		model.FieldCreatedAt: &types.AttributeValueMemberS{Value: item.CreatedAt},
	}
}

// resumeIndex returns the index of the first item strictly after the given
// position. When the positioned item has been deleted in the meantime, the
// scan resumes at the first item ordered after it.
func resumeIndex(owned []model.Todo, after Position) int {
	if after == nil {
		return 0
	}

	todoID := stringAttr(after, model.FieldTodoID)
	createdAt := stringAttr(after, model.FieldCreatedAt)

	for i, item := range owned {
		if item.TodoID == todoID {
			return i + 1
		}
	}

	for i, item := range owned {
		if item.CreatedAt > createdAt || (item.CreatedAt == createdAt && item.TodoID > todoID) {
			return i
		}
	}

	return len(owned)
}

func stringAttr(pos Position, field string) string {
	if attr, ok := pos[field].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}

	return ""
}
