package models

import (
	"fmt"
	"strconv"
)

const (
	attachmentColumnFilename  = "filename"
	attachmentColumnExtension = "extension"
	attachmentColumnType      = "type"
	attachmentColumnContent   = "content"
	AttachmentColumnRemoved   = "removed"
)

// Attachment is a file attached to a status. AttachmentID is the id of the
// owning status: one attachment per status.
type Attachment struct {
	AttachmentID string `json:"attachmentId" validate:"required"`
	Filename     string `json:"filename" validate:"required"`
	Extension    string `json:"extension"`
	Type         string `json:"type"`
	Content      string `json:"content"`
	Removed      bool   `json:"-"`
}

// Equal compares every field, Removed included
func (a *Attachment) Equal(other *Attachment) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}

func (a *Attachment) String() string {
	return fmt.Sprintf("Attachment [attachmentId=%s, filename=%s, extension=%s, type=%s, content=%d bytes]",
		a.AttachmentID, a.Filename, a.Extension, a.Type, len(a.Content))
}

// ToColumns maps the attachment onto the columns of its row. Every column is
// written so a row replace resets the tombstone.
func (a *Attachment) ToColumns() map[string]string {
	return map[string]string{
		attachmentColumnFilename:  a.Filename,
		attachmentColumnExtension: a.Extension,
		attachmentColumnType:      a.Type,
		attachmentColumnContent:   a.Content,
		AttachmentColumnRemoved:   strconv.FormatBool(a.Removed),
	}
}

// AttachmentFromColumns rebuilds an attachment from its row
func AttachmentFromColumns(rowKey string, columns map[string]string) *Attachment {
	removed, _ := strconv.ParseBool(columns[AttachmentColumnRemoved])
	return &Attachment{
		AttachmentID: rowKey,
		Filename:     columns[attachmentColumnFilename],
		Extension:    columns[attachmentColumnExtension],
		Type:         columns[attachmentColumnType],
		Content:      columns[attachmentColumnContent],
		Removed:      removed,
	}
}
