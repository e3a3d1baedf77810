// Package static opens the document root that /static/* assets are served from.
package static

import (
	"context"
	"log/slog"
	"net/url"
	"os"

	"accounts/config"
	"accounts/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the bucket named by static.bucketUrl. Local file roots are
// created when missing so a fresh checkout can start serving immediately.
func New(params Params) (*blob.Bucket, error) {
	bucketURL := params.Config.Static.BucketURL

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := Open(ctx, bucketURL)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Static document root opened", slog.String("bucketUrl", bucketURL))

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return bucket, nil
}

// Open opens a bucket by URL, creating the directory of a file:// root first.
func Open(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid static bucket url %q", bucketURL)
	}

	if u.Scheme == "file" {
		if err := os.MkdirAll(u.Path, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create static root %s", u.Path)
		}
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open static bucket %q", bucketURL)
	}

	return bucket, nil
}
