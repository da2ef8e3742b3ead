package dto

import "github.com/customeros/statusstack/internal/enum"

type Event struct {
	Event    EventDetails  `json:"event"`
	Metadata EventMetadata `json:"metadata"`
}

type EventDetails struct {
	Id         string          `json:"id"`
	EntityId   string          `json:"entityId"`
	EntityType enum.EntityType `json:"entityType"`
	EventType  string          `json:"eventType"`
	Data       interface{}     `json:"data"`
}

type EventMetadata struct {
	UberTraceId string `json:"uber-trace-id"`
	AppSource   string `json:"appSource"`
	UserLogin   string `json:"userLogin"`
	Timestamp   string `json:"timestamp"`
}

type StatusPosted struct {
	StatusID      string `json:"statusId"`
	Username      string `json:"username"`
	Domain        string `json:"domain"`
	ReplyTo       string `json:"replyTo,omitempty"`
	HasAttachment bool   `json:"hasAttachment"`
}

type StatusShared struct {
	StatusID string `json:"statusId"`
	SharedBy string `json:"sharedBy"`
}

type StatusRemoved struct {
	StatusID string `json:"statusId"`
	Username string `json:"username"`
}

type AttachmentSaved struct {
	AttachmentID string `json:"attachmentId"`
	Filename     string `json:"filename"`
	Type         string `json:"type"`
}
