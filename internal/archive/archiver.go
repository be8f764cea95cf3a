package archive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/kbyiringiro/momoverify/internal/domain"
)

// Archiver writes raw SMS messages to an audit archive. Archiving is
// best-effort; callers log failures and continue.
type Archiver interface {
	// ArchiveMessage stores the record's raw text and returns the URI of
	// the archived object.
	ArchiveMessage(ctx context.Context, rec *domain.PaymentRecord) (string, error)
}

// GCSArchiver is the concrete implementation of Archiver that writes each
// raw message to a GCS bucket. It assumes Application Default Credentials
// are configured (gcloud auth application-default login).
type GCSArchiver struct {
	bucket string
}

// NewGCSArchiver creates an archiver targeting the given bucket.
func NewGCSArchiver(bucket string) *GCSArchiver {
	return &GCSArchiver{bucket: bucket}
}

// ArchiveMessage uploads the raw message text under
// sms/YYYY/MM/DD/<uuid>.txt and returns the resulting gs:// URI.
func (a *GCSArchiver) ArchiveMessage(ctx context.Context, rec *domain.PaymentRecord) (string, error) {
	objectName := ObjectName(rec.ReceivedAt)

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"

	if _, err := io.Copy(w, strings.NewReader(rec.RawText)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy message to GCS writer: %w", err)
	}

	// Close to finalize the upload
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, objectName), nil
}

// ObjectName builds the archive object name for a message received at ts,
// e.g. "sms/2024/01/01/8d6f...-raw.txt".
func ObjectName(ts time.Time) string {
	return fmt.Sprintf("sms/%s/%s-raw.txt", ts.UTC().Format("2006/01/02"), uuid.New().String())
}

// NopArchiver is used when no archive bucket is configured.
type NopArchiver struct{}

// ArchiveMessage discards the record and reports an empty URI.
func (NopArchiver) ArchiveMessage(ctx context.Context, rec *domain.PaymentRecord) (string, error) {
	return "", nil
}
