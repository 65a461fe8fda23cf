package dto

import (
	"github.com/google/uuid"

	"keel/internal/domains/todo/model"
	"keel/internal/domains/todo/store"
	"keel/shared/constant"
	"keel/shared/timezone"
)

type CreateTodoRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// ToModel builds the stored item: fresh id, creation timestamp, not done.
func (c *CreateTodoRequest) ToModel(ownerID string) model.Todo {
	return model.Todo{
		OwnerID:   ownerID,
		TodoID:    uuid.NewString(),
		Name:      c.Name,
		DueDate:   c.DueDate,
		Done:      false,
		CreatedAt: timezone.Now().Format(constant.DateFormat),
	}
}

// UpdateTodoRequest overwrites exactly the three mutable fields of an item.
type UpdateTodoRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
	Done    bool   `json:"done"`
}

func (u *UpdateTodoRequest) ToFields() store.Fields {
	return store.Fields{
		Name:    u.Name,
		DueDate: u.DueDate,
		Done:    u.Done,
	}
}

type TodoResponse struct {
	TodoID        string `json:"todo_id"`
	Name          string `json:"name"`
	DueDate       string `json:"due_date"`
	Done          bool   `json:"done"`
	CreatedAt     string `json:"created_at"`
	AttachmentURL string `json:"attachment_url,omitempty"`
}

func (r *TodoResponse) FromModel(mod model.Todo) {
	r.TodoID = mod.TodoID
	r.Name = mod.Name
	r.DueDate = mod.DueDate
	r.Done = mod.Done
	r.CreatedAt = mod.CreatedAt
	r.AttachmentURL = mod.AttachmentURL
}

// TodoPageResponse is one page of an owner's items. NextCursor is present
// iff more items exist beyond the page; TotalData is a point-in-time count
// taken independently of the page scan.
type TodoPageResponse struct {
	Todos      []TodoResponse `json:"todos"`
	NextCursor string         `json:"next_cursor,omitempty"`
	TotalData  int            `json:"total_data"`
}

func (r *TodoPageResponse) FromModels(models []model.Todo, nextCursor string, totalData int) {
	r.NextCursor = nextCursor
	r.TotalData = totalData

	r.Todos = make([]TodoResponse, len(models))
	for i, mod := range models {
		r.Todos[i].FromModel(mod)
	}
}

// AttachmentUploadResponse carries the short-lived write URL for the blob
// and the stable public URL persisted on the item.
type AttachmentUploadResponse struct {
	UploadURL     string `json:"upload_url"`
	AttachmentURL string `json:"attachment_url"`
}
