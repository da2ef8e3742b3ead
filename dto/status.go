package dto

import "github.com/customeros/statusstack/internal/models"

// Reply is the body of POST /rest/statuses/discussion
type Reply struct {
	Content  string `json:"content" validate:"required,max=750"`
	StatusID string `json:"statusId" validate:"required"`
}

// StatusUpdate is the body of POST /rest/statuses/update
type StatusUpdate struct {
	Content    string             `json:"content" validate:"required,max=750"`
	Attachment *models.Attachment `json:"attachment,omitempty" validate:"-"`
}
