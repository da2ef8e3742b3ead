package storage

import (
	"context"
	"encoding/base64"
	"path"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/models"
	"github.com/customeros/statusstack/internal/tracing"
)

const defaultArchivePrefix = "attachments"

type attachmentArchive struct {
	storage interfaces.StorageService
	prefix  string
}

// NewAttachmentArchive stores purged attachments under <prefix>/<attachmentId>/<filename>
func NewAttachmentArchive(storage interfaces.StorageService, prefix string) interfaces.AttachmentArchive {
	if prefix == "" {
		prefix = defaultArchivePrefix
	}
	return &attachmentArchive{
		storage: storage,
		prefix:  strings.Trim(prefix, "/"),
	}
}

// Archive uploads the attachment and returns the object key. Content that is
// not valid base64 is stored as is.
func (a *attachmentArchive) Archive(ctx context.Context, attachment *models.Attachment) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentArchive.Archive")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if attachment == nil {
		return "", errors.New("attachment is nil")
	}
	tracing.TagEntity(span, attachment.AttachmentID)

	data, err := base64.StdEncoding.DecodeString(attachment.Content)
	if err != nil {
		data = []byte(attachment.Content)
	}

	contentType := attachment.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := a.Key(attachment)
	if err := a.storage.Upload(ctx, key, data, contentType); err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrapf(err, "archive attachment %s", attachment.AttachmentID)
	}
	span.LogKV("archive.key", key, "archive.bytes", len(data))
	return key, nil
}

func (a *attachmentArchive) Key(attachment *models.Attachment) string {
	filename := path.Base("/" + attachment.Filename)
	if filename == "/" || filename == "." {
		filename = attachment.AttachmentID
	}
	return a.prefix + "/" + attachment.AttachmentID + "/" + filename
}
