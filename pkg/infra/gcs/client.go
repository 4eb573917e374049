package gcs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/cybedefend/cdscan/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// Client keeps copies of workspace archives in a GCS bucket.
type Client struct {
	client *storage.Client
	bucket types.GCSBucket
	prefix string
}

var _ interfaces.ArchiveStore = (*Client)(nil)

func New(ctx context.Context, bucket types.GCSBucket, prefix string, options ...option.ClientOption) (*Client, error) {
	if bucket == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bucket name is empty")
	}

	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &Client{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// ObjectName joins the configured prefix and name.
func (x *Client) ObjectName(name string) string {
	if x.prefix == "" {
		return name
	}
	return path.Join(x.prefix, name)
}

// Put implements interfaces.ArchiveStore.
func (x *Client) Put(ctx context.Context, name string, archivePath string) error {
	fd, err := os.Open(archivePath)
	if err != nil {
		return goerr.Wrap(err, "failed to open archive", goerr.V("path", archivePath))
	}
	defer safe.Close(fd)

	// cancelling the writer context discards the upload instead of
	// committing a partial object
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objName := x.ObjectName(name)
	w := x.client.Bucket(x.bucket.String()).Object(objName).NewWriter(wctx)
	w.ContentType = "application/zip"

	n, err := io.Copy(w, fd)
	if err != nil {
		cancel()
		return goerr.Wrap(err, "failed to write archive object",
			goerr.V("bucket", x.bucket),
			goerr.V("object", objName),
		)
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize archive object",
			goerr.V("bucket", x.bucket),
			goerr.V("object", objName),
		)
	}

	logging.From(ctx).Info("Archive stored",
		slog.String("bucket", x.bucket.String()),
		slog.String("object", objName),
		slog.Int64("size", n),
	)
	return nil
}
