package storage

import (
	"context"
	"io"
	"os"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"

	"github.com/khalilabidd/Project-Hermes/pkg/domain/interfaces"
	"github.com/khalilabidd/Project-Hermes/pkg/domain/model"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// GCSStore uploads generated documents to a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ArtifactStore = (*GCSStore)(nil)

// NewGCS creates an artifact store for one bucket. Object names are
// "<prefix>/<artifact name>". Credentials come from the environment unless
// extra client options are supplied.
func NewGCS(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client", goerr.V("bucket", bucket))
	}

	return &GCSStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Upload stores one artifact and returns its gs:// URI.
func (s *GCSStore) Upload(ctx context.Context, artifact model.Artifact) (string, error) {
	f, err := os.Open(artifact.Path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open artifact", goerr.V("path", artifact.Path))
	}
	defer f.Close()

	objectName := path.Join(s.prefix, artifact.Name)
	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = docxContentType

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", s.bucket),
			goerr.V("object", objectName),
		)
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", s.bucket),
			goerr.V("object", objectName),
		)
	}

	return "gs://" + s.bucket + "/" + objectName, nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
