package renderer

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// ErrInvalidConfig is returned when a render is requested with unusable parameters
var ErrInvalidConfig = errors.New("invalid render configuration")

// Config controls tile scheduling
type Config struct {
	TileSize   int    // Edge length of square tiles in pixels
	NumWorkers int    // Maximum concurrent tile tasks, 0 = all CPUs
	Seed       uint64 // Root seed; tile streams derive from (Seed, tile ID)
}

// DefaultConfig returns 32 pixel tiles on every CPU with seed 0
func DefaultConfig() Config {
	return Config{TileSize: DefaultTileSize}
}

// PathTracer renders a scene into an image by averaging integrator samples per pixel
type PathTracer struct {
	Integrator integrator.Integrator
	Config     Config
	Logger     core.Logger
	Progress   func(done, total int) // Optional, called on the Run goroutine as tiles finish
}

// NewPathTracer creates a path tracer
func NewPathTracer(integ integrator.Integrator, config Config, logger core.Logger) *PathTracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &PathTracer{Integrator: integ, Config: config, Logger: logger}
}

// structuredLogger is implemented by loggers that accept key/value attributes
type structuredLogger interface {
	Info(msg string, args ...any)
}

// Run renders scene through camera into img using samplesPerPixel samples.
// Each tile is rendered by its own task into a private buffer with its own
// sampler; buffers are copied into img after every task has finished, so the
// output depends only on Config.Seed and not on scheduling.
func (pt *PathTracer) Run(scene integrator.Scene, camera *Camera, img *Image, samplesPerPixel int) (RenderStats, error) {
	if err := pt.validate(scene, camera, img, samplesPerPixel); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	tiles := NewTileGrid(img.Width, img.Height, pt.Config.TileSize)
	pool := newWorkerPool(pt.Config.NumWorkers)

	stats := RenderStats{
		RunID:           uuid.New(),
		TotalPixels:     img.Width * img.Height,
		TotalSamples:    img.Width * img.Height * samplesPerPixel,
		SamplesPerPixel: samplesPerPixel,
		Tiles:           len(tiles),
		Workers:         pool.numWorkers,
	}
	pt.Logger.Printf("Rendering %dx%d at %d spp: %d tiles on %d workers\n",
		img.Width, img.Height, samplesPerPixel, stats.Tiles, stats.Workers)

	// A panicking integrator or shape fails the render instead of the process
	render := func(tile *Tile) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("tile %d %v: %v", tile.ID, tile.Bounds, r)
			}
		}()
		pt.renderTile(tile, scene, camera, img.Width, img.Height, samplesPerPixel)
		return nil
	}

	done := 0
	onDone := func(*Tile) {
		done++
		if pt.Progress != nil {
			pt.Progress(done, len(tiles))
		}
	}

	if err := pool.run(tiles, render, onDone); err != nil {
		return RenderStats{}, errors.Wrap(err, "render tiles")
	}

	// All tasks have finished; tile regions are disjoint
	for _, tile := range tiles {
		tile.CopyTo(img)
	}

	stats.Duration = time.Since(start)
	if sl, ok := pt.Logger.(structuredLogger); ok {
		sl.Info("render complete",
			"run", stats.RunID.String(),
			"tiles", stats.Tiles,
			"workers", stats.Workers,
			"samples", stats.TotalSamples,
			"duration", stats.Duration)
	} else {
		pt.Logger.Printf("Render %s complete in %v\n", stats.RunID, stats.Duration)
	}

	return stats, nil
}

func (pt *PathTracer) validate(scene integrator.Scene, camera *Camera, img *Image, samplesPerPixel int) error {
	switch {
	case pt.Integrator == nil:
		return errors.Wrap(ErrInvalidConfig, "no integrator")
	case scene == nil:
		return errors.Wrap(ErrInvalidConfig, "no scene")
	case camera == nil:
		return errors.Wrap(ErrInvalidConfig, "no camera")
	case img == nil || img.Width <= 0 || img.Height <= 0:
		return errors.Wrap(ErrInvalidConfig, "image must have positive dimensions")
	case len(img.Pixels) != img.Width*img.Height:
		return errors.Wrapf(ErrInvalidConfig, "image buffer holds %d pixels, want %dx%d", len(img.Pixels), img.Width, img.Height)
	case samplesPerPixel < 1:
		return errors.Wrapf(ErrInvalidConfig, "samples per pixel must be at least 1, got %d", samplesPerPixel)
	case pt.Config.TileSize < 1:
		return errors.Wrapf(ErrInvalidConfig, "tile size must be at least 1, got %d", pt.Config.TileSize)
	}
	return nil
}

// renderTile fills the tile buffer; it touches no shared mutable state
func (pt *PathTracer) renderTile(tile *Tile, scene integrator.Scene, camera *Camera, width, height, samplesPerPixel int) {
	sampler := core.NewRandomSampler(pt.Config.Seed, uint64(tile.ID))
	invSamples := 1.0 / float64(samplesPerPixel)

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			var color core.Vec3
			for s := 0; s < samplesPerPixel; s++ {
				u := (float64(x) + sampler.Get1D()) / float64(width)
				v := (float64(y) + sampler.Get1D()) / float64(height)
				color = color.Add(pt.Integrator.RayColor(camera.GetRay(u, v), scene, sampler))
			}
			tile.set(x, y, color.Multiply(invSamples))
		}
	}
}
