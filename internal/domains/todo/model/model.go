package model

const (
	EntityName = "todo"

	FieldOwnerID       = "owner_id"
	FieldTodoID        = "todo_id"
	FieldName          = "name"
	FieldDueDate       = "due_date"
	FieldDone          = "done"
	FieldCreatedAt     = "created_at"
	FieldAttachmentURL = "attachment_url"
)

// Todo is the stored representation of a task list item. The pair
// (OwnerID, TodoID) uniquely identifies an item; OwnerID is the partition
// key and the sole authorization boundary below the transport layer.
type Todo struct {
	OwnerID       string `dynamodbav:"owner_id"       json:"owner_id"`
	TodoID        string `dynamodbav:"todo_id"        json:"todo_id"`
	Name          string `dynamodbav:"name"           json:"name"`
	DueDate       string `dynamodbav:"due_date"       json:"due_date"`
	Done          bool   `dynamodbav:"done"           json:"done"`
	CreatedAt     string `dynamodbav:"created_at"     json:"created_at"`
	AttachmentURL string `dynamodbav:"attachment_url,omitempty" json:"attachment_url,omitempty"`
}
