// internal/store/s3_backend.go
package store

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/javajoker/draft-backend/internal/config"
	"github.com/javajoker/draft-backend/internal/models"
)

// S3Backend keeps the same JSON document as FileBackend in a single object.
type S3Backend struct {
	client s3iface.S3API
	bucket string
	key    string
}

func NewS3Backend(cfg config.AWSConfig) (*S3Backend, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewS3BackendWithClient(s3.New(sess), cfg.S3Bucket, cfg.DraftsKey), nil
}

func NewS3BackendWithClient(client s3iface.S3API, bucket, key string) *S3Backend {
	return &S3Backend{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

func (b *S3Backend) Name() string {
	return fmt.Sprintf("s3://%s/%s", b.bucket, b.key)
}

func (b *S3Backend) Load() (map[string]*models.ProductDraft, error) {
	out, err := b.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to fetch draft snapshot from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft snapshot from S3: %w", err)
	}

	return decodeSnapshot(data)
}

func (b *S3Backend) Save(drafts map[string]*models.ProductDraft) error {
	data, err := encodeSnapshot(drafts)
	if err != nil {
		return err
	}

	_, err = b.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(b.key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload draft snapshot to S3: %w", err)
	}

	return nil
}
