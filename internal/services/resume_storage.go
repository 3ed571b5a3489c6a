package services

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"jobtrack/internal/config"
)

// ResumeStorage stores uploaded resumes in S3, one object per job.
type ResumeStorage struct {
	client *s3.Client
	bucket string
}

func NewResumeStorage(s3cfg *config.S3Config) *ResumeStorage {
	return &ResumeStorage{client: s3cfg.Client, bucket: s3cfg.Bucket}
}

// Enabled reports whether S3 credentials and a bucket were configured.
func (s *ResumeStorage) Enabled() bool {
	return s.client != nil && s.bucket != ""
}

// Upload streams the file to S3 and returns the object key.
func (s *ResumeStorage) Upload(ctx context.Context, userID, jobID, filename string, body io.Reader) (string, error) {
	key := filepath.Join("resumes", userID, jobID+filepath.Ext(filename))

	uploader := manager.NewUploader(s.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// PresignDownload returns a time-limited GET URL for the stored resume.
func (s *ResumeStorage) PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
