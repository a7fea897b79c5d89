package services

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// Uploader wraps the Supabase Storage client. Constructed once in main with
// credentials from the environment.
type Uploader struct {
	client  *storage.Client
	baseURL string
	bucket  string
}

func NewUploader(supabaseURL, supabaseKey, bucket string) *Uploader {
	return &Uploader{
		client:  storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil),
		baseURL: strings.TrimRight(supabaseURL, "/"),
		bucket:  bucket,
	}
}

// ResourceClass maps a MIME type to the storage classification used as the
// object-path prefix: application/pdf -> raw, image/* -> image, else auto.
func ResourceClass(contentType string) string {
	switch {
	case contentType == "application/pdf":
		return "raw"
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	default:
		return "auto"
	}
}

// UploadBytes stores the file under <class>/<name> in the public bucket and
// returns the public URL.
func (u *Uploader) UploadBytes(data []byte, name, contentType string) (string, error) {
	objectPath := fmt.Sprintf("%s/%s", ResourceClass(contentType), name)

	options := storage.FileOptions{
		ContentType: &contentType,
	}
	if _, err := u.client.UploadFile(u.bucket, objectPath, bytes.NewBuffer(data), options); err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.baseURL, u.bucket, objectPath)
	return publicURL, nil
}
