package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient relays uploaded files to the object storage provider.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient creates the client and ensures the bucket exists.
func NewMinIOClient(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	slog.Info("Connected to MinIO", "endpoint", endpoint, "bucket", bucket)
	return &MinIOClient{
		client: client,
		bucket: bucket,
	}, nil
}

// UploadFile relays a multipart file to object storage through a temporary
// local file, which is removed afterward whether or not the relay succeeds.
// Returns the public URL of the stored object.
func (m *MinIOClient) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to buffer file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to buffer file: %w", err)
	}

	objectName := fmt.Sprintf("%s/%d-%s", folder, time.Now().UnixNano(), filepath.Base(file.Filename))
	_, err = m.client.FPutObject(ctx, m.bucket, objectName, tmp.Name(), minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	scheme := "http"
	if m.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.client.EndpointURL().Host, m.bucket, objectName), nil
}
