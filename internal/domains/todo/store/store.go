package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"keel/internal/domains/todo/model"
)

// Position is the store-native resume key for a paginated scan. It is opaque
// to everything above the store: the cursor codec serializes it without
// interpreting its fields, and the service only threads it through. A nil
// Position means "no further pages" on output and "start from the beginning"
// on input.
type Position map[string]types.AttributeValue

// Fields is the partial update applied by Update. Exactly these three fields
// are overwritten; everything else on the item is immutable after creation
// except the attachment URL, which has its own single-field write.
type Fields struct {
	Name    string
	DueDate string
	Done    bool
}

// Todo is the durable store of todo items, partitioned by owner.
//
// GetByID returns (nil, nil) when no item matches; absence is a normal
// outcome the caller must check, not an error. Delete is idempotent.
// ListPage returns at most limit items in creation order, resuming after
// the given position, and a next position iff the scan is not exhausted.
// Count is an independent query with no snapshot relation to ListPage.
type Todo interface {
	GetByID(ctx context.Context, ownerID, todoID string) (*model.Todo, error)
	Insert(ctx context.Context, item model.Todo) error
	Update(ctx context.Context, ownerID, todoID string, fields Fields) (model.Todo, error)
	SetAttachmentURL(ctx context.Context, ownerID, todoID, url string) error
	Delete(ctx context.Context, ownerID, todoID string) error
	ListPage(ctx context.Context, ownerID string, after Position, limit int) ([]model.Todo, Position, error)
	Count(ctx context.Context, ownerID string) (int, error)
}
