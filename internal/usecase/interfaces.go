package usecase

import "context"

// ImageUploader abstracts the image storage collaborator. Data-URL payloads
// from the client are uploaded and exchanged for public URLs.
type ImageUploader interface {
	UploadDataURL(ctx context.Context, dataURL, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
