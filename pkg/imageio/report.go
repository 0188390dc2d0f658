package imageio

import (
	"context"
	"io"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/pkg/errors"
	"gocloud.dev/blob"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Report is the JSON summary written next to a rendered image
type Report struct {
	RunID            string  `json:"runId"`
	Scene            string  `json:"scene"`
	Image            string  `json:"image"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	MaxDepth         int     `json:"maxDepth"`
	Seed             uint64  `json:"seed"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	TotalSamples     int     `json:"totalSamples"`
	DurationMillis   float64 `json:"durationMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	Primitives       int     `json:"primitives"`
	BVHNodes         int     `json:"bvhNodes"`
	BVHDepth         int     `json:"bvhDepth"`
}

// NewReport fills the timing and sampling fields of a report from stats
func NewReport(stats renderer.RenderStats) Report {
	return Report{
		RunID:            stats.RunID.String(),
		SamplesPerPixel:  stats.SamplesPerPixel,
		Tiles:            stats.Tiles,
		Workers:          stats.Workers,
		TotalSamples:     stats.TotalSamples,
		DurationMillis:   float64(stats.Duration) / float64(time.Millisecond),
		SamplesPerSecond: stats.SamplesPerSecond(),
	}
}

// WriteReport writes report as JSON
func WriteReport(w io.Writer, report Report) error {
	return errors.Wrap(json.MarshalWrite(w, report, json.Deterministic(true)), "encoding report")
}

// SaveReport writes report as JSON to key inside the bucket at bucketURL
func SaveReport(ctx context.Context, bucketURL, key string, report Report) error {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return errors.Wrapf(ErrWriteFailed, "opening bucket %q: %v", bucketURL, err)
	}
	defer bucket.Close()

	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: "application/json"})
	if err != nil {
		return errors.Wrapf(ErrWriteFailed, "creating %q: %v", key, err)
	}
	if err := WriteReport(w, report); err != nil {
		w.Close()
		return errors.Wrapf(ErrWriteFailed, "writing %q: %v", key, err)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(ErrWriteFailed, "closing %q: %v", key, err)
	}
	return nil
}
