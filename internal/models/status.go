package models

import (
	"strconv"
	"time"
)

const (
	statusColumnUsername        = "username"
	statusColumnDomain          = "domain"
	statusColumnContent         = "content"
	statusColumnStatusDate      = "statusDate"
	statusColumnReplyTo         = "replyTo"
	statusColumnReplyToUsername = "replyToUsername"
	StatusColumnRemoved         = "removed"
)

// Status is a single microblog post
type Status struct {
	StatusID        string    `json:"statusId"`
	Username        string    `json:"username" validate:"required"`
	Domain          string    `json:"domain,omitempty"`
	Content         string    `json:"content" validate:"required,max=750"`
	StatusDate      time.Time `json:"statusDate"`
	ReplyTo         string    `json:"replyTo,omitempty"`
	ReplyToUsername string    `json:"replyToUsername,omitempty"`
	Removed         bool      `json:"-"`

	// computed on read, never stored
	DetailsAvailable    bool `json:"detailsAvailable"`
	AttachmentAvailable bool `json:"attachmentAvailable"`
}

func (s *Status) ToColumns() map[string]string {
	return map[string]string{
		statusColumnUsername:        s.Username,
		statusColumnDomain:          s.Domain,
		statusColumnContent:         s.Content,
		statusColumnStatusDate:      s.StatusDate.UTC().Format(time.RFC3339Nano),
		statusColumnReplyTo:         s.ReplyTo,
		statusColumnReplyToUsername: s.ReplyToUsername,
		StatusColumnRemoved:         strconv.FormatBool(s.Removed),
	}
}

func StatusFromColumns(rowKey string, columns map[string]string) *Status {
	removed, _ := strconv.ParseBool(columns[StatusColumnRemoved])
	statusDate, _ := time.Parse(time.RFC3339Nano, columns[statusColumnStatusDate])
	return &Status{
		StatusID:        rowKey,
		Username:        columns[statusColumnUsername],
		Domain:          columns[statusColumnDomain],
		Content:         columns[statusColumnContent],
		StatusDate:      statusDate,
		ReplyTo:         columns[statusColumnReplyTo],
		ReplyToUsername: columns[statusColumnReplyToUsername],
		Removed:         removed,
	}
}

// StatusDetails groups the discussion around a status
type StatusDetails struct {
	StatusID           string    `json:"statusId"`
	DiscussionStatuses []*Status `json:"discussionStatuses"`
	SharedByLogins     []string  `json:"sharedByLogins"`
}
