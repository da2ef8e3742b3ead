package storage

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/services/storage/aws_client"
)

type R2StorageConfig struct {
	AccountID       string `env:"CLOUDFLARE_R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"CLOUDFLARE_R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"CLOUDFLARE_R2_ACCESS_KEY_SECRET"`
	ArchiveBucket   string `env:"CLOUDFLARE_R2_ATTACHMENT_ARCHIVE_BUCKET"`
}

// Enabled reports whether enough is configured to reach a bucket
func (c *R2StorageConfig) Enabled() bool {
	return c != nil && c.AccountID != "" && c.AccessKeyID != "" && c.ArchiveBucket != ""
}

// NewR2StorageService creates a StorageService configured for Cloudflare R2
func NewR2StorageService(config *R2StorageConfig) (interfaces.StorageService, error) {
	r2Client, err := aws_client.NewS3Client(&aws.Config{
		Endpoint:         aws.String("https://" + config.AccountID + ".r2.cloudflarestorage.com"),
		Region:           aws.String("auto"),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	return NewStorageService(r2Client, config.ArchiveBucket), nil
}
