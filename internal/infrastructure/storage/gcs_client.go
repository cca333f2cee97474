package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	projectID  string
}

func NewCloudStorageClient(ctx context.Context, bucketName, projectID string, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}, nil
}

func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	filename := fmt.Sprintf("public/%s/%s-%s", folder, uuid.New().String(), time.Now().Format("20060102150405"))

	switch fileType {
	case "image/jpeg", "image/jpg":
		filename += ".jpg"
	case "image/png":
		filename += ".png"
	case "image/gif":
		filename += ".gif"
	case "image/webp":
		filename += ".webp"
	default:
		filename += ".bin"
	}

	obj := c.client.Bucket(c.bucketName).Object(filename)
	wc := obj.NewWriter(ctx)
	wc.ContentType = fileType
	wc.CacheControl = "public, max-age=86400" // 1 day caching

	if _, err := io.Copy(wc, file); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, filename), nil
}

// UploadDataURL decodes a base64 data URL as produced by browser canvas and
// file readers ("data:image/jpeg;base64,...") and stores it as an object.
func (c *CloudStorageClient) UploadDataURL(ctx context.Context, dataURL, folder string) (string, error) {
	fileType, payload, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	return c.UploadFile(ctx, bytes.NewReader(payload), fileType, folder)
}

func parseDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, fmt.Errorf("invalid data URL")
	}

	comma := strings.Index(dataURL, ",")
	if comma < 0 {
		return "", nil, fmt.Errorf("invalid data URL")
	}

	meta := dataURL[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URL encoding")
	}
	fileType := strings.TrimSuffix(meta, ";base64")

	payload, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL: %v", err)
	}

	return fileType, payload, nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	// Expected URL format: https://storage.googleapis.com/bucket-name/file-path
	const prefix = "https://storage.googleapis.com/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("invalid GCS URL format")
	}

	path := fileURL[len(prefix):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] != c.bucketName {
		return fmt.Errorf("invalid GCS URL format or bucket mismatch")
	}

	obj := c.client.Bucket(c.bucketName).Object(parts[1])
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
