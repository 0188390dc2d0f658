package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line. Zero numeric values keep the
// scene's recommended settings.
type options struct {
	scene     string
	sceneFile string
	width     int
	height    int
	spp       int
	maxDepth  int
	tileSize  int
	workers   int
	seed      uint64
	out       string
	name      string
	format    string
	report    bool
	debug     bool
	help      bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name (see -help)")
	fs.StringVar(&opts.sceneFile, "scene-file", "", "YAML scene description; overrides -scene")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&opts.tileSize, "tile", renderer.DefaultTileSize, "Tile edge length in pixels")
	fs.IntVar(&opts.workers, "workers", 0, "Concurrent tile workers (0 = all CPUs)")
	fs.Uint64Var(&opts.seed, "seed", 0, "Root random seed")
	fs.StringVar(&opts.out, "out", "", "Output bucket URL, e.g. file:///tmp/renders or gs://bucket (default: output/<scene>)")
	fs.StringVar(&opts.name, "name", "", "Output object name without extension (default: render_<timestamp>)")
	fs.StringVar(&opts.format, "format", "png", "Image format: png, bmp or tiff")
	fs.BoolVar(&opts.report, "report", false, "Write a JSON render report next to the image")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.help {
		printHelp(output, fs)
	}
	return opts, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
}

// createScene loads the scene file when one is given, otherwise the named built-in scene
func createScene(name, file string) (*scene.Scene, error) {
	if file != "" {
		return loaders.LoadSceneFile(file)
	}
	return scene.New(name)
}

// applyOverrides replaces scene defaults with any settings given on the command line
func applyOverrides(s *scene.Scene, opts options) scene.SamplingConfig {
	config := s.SamplingConfig
	if opts.width > 0 {
		config.Width = opts.width
	}
	if opts.height > 0 {
		config.Height = opts.height
	}
	if opts.spp > 0 {
		config.SamplesPerPixel = opts.spp
	}
	if opts.maxDepth > 0 {
		config.MaxDepth = opts.maxDepth
	}
	return config
}

func run(ctx context.Context, opts options, logger *renderer.SlogLogger) error {
	format, err := imageio.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	s, err := createScene(opts.scene, opts.sceneFile)
	if err != nil {
		return err
	}
	sampling := applyOverrides(s, opts)

	// The camera follows the output aspect ratio, which flags may have changed
	cameraConfig := s.CameraConfig
	cameraConfig.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
	camera := renderer.NewCamera(cameraConfig)

	bvh := s.BVH.Stats()
	log := logger.With("scene", s.Name)
	log.Info("scene ready",
		"primitives", s.GetPrimitiveCount(),
		"bvh_nodes", bvh.Nodes,
		"bvh_depth", bvh.MaxDepth,
		"width", sampling.Width,
		"height", sampling.Height,
		"spp", sampling.SamplesPerPixel,
		"max_depth", sampling.MaxDepth,
	)

	pt := renderer.NewPathTracer(
		integrator.NewPathTracingIntegrator(sampling.MaxDepth),
		renderer.Config{TileSize: opts.tileSize, NumWorkers: opts.workers, Seed: opts.seed},
		log,
	)
	pt.Progress = func(done, total int) {
		log.Debug("tile finished", "done", done, "total", total)
	}

	img := renderer.NewImage(sampling.Width, sampling.Height)
	stats, err := pt.Run(s, camera, img, sampling.SamplesPerPixel)
	if err != nil {
		return errors.Wrap(err, "rendering")
	}

	bucketURL := opts.out
	if bucketURL == "" {
		dir, err := filepath.Abs(filepath.Join("output", s.Name))
		if err != nil {
			return errors.Wrap(err, "resolving output directory")
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
		bucketURL = "file://" + filepath.ToSlash(dir)
	}

	name := opts.name
	if name == "" {
		name = "render_" + time.Now().Format("20060102_150405")
	}
	key := name + format.Extension()

	if err := imageio.Save(ctx, bucketURL, key, img); err != nil {
		return err
	}
	log.Info("image saved", "bucket", bucketURL, "key", key)

	if opts.report {
		report := imageio.NewReport(stats)
		report.Scene = s.Name
		report.Image = key
		report.Width = sampling.Width
		report.Height = sampling.Height
		report.MaxDepth = sampling.MaxDepth
		report.Seed = opts.seed
		report.Primitives = s.GetPrimitiveCount()
		report.BVHNodes = bvh.Nodes
		report.BVHDepth = bvh.MaxDepth

		reportKey := strings.TrimSuffix(key, format.Extension()) + ".json"
		if err := imageio.SaveReport(ctx, bucketURL, reportKey, report); err != nil {
			return err
		}
		log.Info("report saved", "key", reportKey)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if opts.help {
		return
	}

	logger := renderer.NewDefaultLogger(opts.debug)
	if err := run(context.Background(), opts, logger); err != nil {
		logger.Info("render failed", "error", err)
		os.Exit(1)
	}
}
