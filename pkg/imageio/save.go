package imageio

import (
	"context"

	"github.com/pkg/errors"
	"gocloud.dev/blob"

	// Registered bucket schemes: file://, mem:// and gs://
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrWriteFailed is returned when an encoded image cannot be stored
var ErrWriteFailed = errors.New("image write failed")

// Save encodes img in the format named by key's extension and writes it to
// key inside the bucket at bucketURL
func Save(ctx context.Context, bucketURL, key string, img *renderer.Image) error {
	format, err := FormatFromPath(key)
	if err != nil {
		return err
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return errors.Wrapf(ErrWriteFailed, "opening bucket %q: %v", bucketURL, err)
	}
	defer bucket.Close()

	return WriteTo(ctx, bucket, key, img, format)
}

// WriteTo encodes img into key of an open bucket
func WriteTo(ctx context.Context, bucket *blob.Bucket, key string, img *renderer.Image, format Format) error {
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: format.ContentType()})
	if err != nil {
		return errors.Wrapf(ErrWriteFailed, "creating %q: %v", key, err)
	}
	if err := Encode(w, img, format); err != nil {
		w.Close()
		return errors.Wrapf(ErrWriteFailed, "writing %q: %v", key, err)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(ErrWriteFailed, "closing %q: %v", key, err)
	}
	return nil
}
