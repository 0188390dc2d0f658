package scene

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	// ErrEmptyScene is returned when a scene has no shapes to build a BVH from
	ErrEmptyScene = errors.New("scene has no shapes")
	// ErrInvalidScene is returned for dangling materials and unusable cameras
	ErrInvalidScene = errors.New("invalid scene")
)

// Builder collects materials and shapes and produces an immutable Scene
type Builder struct {
	name      string
	materials map[string]material.Material
	shapes    []geometry.Shape
	camera    renderer.CameraConfig
	sky       Gradient
	sampling  SamplingConfig
	bvhSeed   uint64
	err       error
}

// NewBuilder creates a builder with a white-to-blue sky and default sampling
func NewBuilder(name string) *Builder {
	return &Builder{
		name:      name,
		materials: make(map[string]material.Material),
		sky: Gradient{
			Top:    core.NewVec3(0.5, 0.7, 1.0),
			Bottom: core.NewVec3(1.0, 1.0, 1.0),
		},
		sampling: SamplingConfig{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 100,
			MaxDepth:        integrator.DefaultMaxDepth,
		},
	}
}

// AddMaterial registers m under name and returns it. The scene owns every
// registered material.
func (b *Builder) AddMaterial(name string, m material.Material) material.Material {
	if _, exists := b.materials[name]; exists && b.err == nil {
		b.err = errors.Wrapf(ErrInvalidScene, "material %q registered twice", name)
	}
	b.materials[name] = m
	return m
}

// Material returns a registered material
func (b *Builder) Material(name string) (material.Material, bool) {
	m, ok := b.materials[name]
	return m, ok
}

// AddShape adds a shape; its material must be registered before Build
func (b *Builder) AddShape(shapes ...geometry.Shape) {
	b.shapes = append(b.shapes, shapes...)
}

// SetCamera sets the camera configuration
func (b *Builder) SetCamera(config renderer.CameraConfig) {
	b.camera = config
}

// SetBackground sets the sky gradient
func (b *Builder) SetBackground(top, bottom core.Vec3) {
	b.sky = Gradient{Top: top, Bottom: bottom}
}

// SetSampling sets the recommended render settings
func (b *Builder) SetSampling(config SamplingConfig) {
	b.sampling = config
}

// SetBVHSeed sets the seed for the BVH split-axis generator
func (b *Builder) SetBVHSeed(seed uint64) {
	b.bvhSeed = seed
}

// Build validates the collected scene and constructs its BVH
func (b *Builder) Build() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.shapes) == 0 {
		return nil, errors.Wrapf(ErrEmptyScene, "scene %q", b.name)
	}

	owned := make(map[material.Material]bool, len(b.materials))
	for _, m := range b.materials {
		owned[m] = true
	}
	for i, shape := range b.shapes {
		m := shapeMaterial(shape)
		if m == nil || !owned[m] {
			return nil, errors.Wrapf(ErrInvalidScene, "shape %d (%T) references a material the scene does not own", i, shape)
		}
	}

	if err := validateSampling(b.sampling); err != nil {
		return nil, err
	}
	cameraConfig := b.camera
	if cameraConfig.AspectRatio == 0 {
		cameraConfig.AspectRatio = float64(b.sampling.Width) / float64(b.sampling.Height)
	}
	if err := validateCamera(cameraConfig); err != nil {
		return nil, err
	}

	shapes := append([]geometry.Shape(nil), b.shapes...)
	return &Scene{
		Name:           b.name,
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Background:     b.sky,
		Materials:      b.materials,
		Shapes:         shapes,
		SamplingConfig: b.sampling,
		BVH:            geometry.NewBVH(shapes, b.bvhSeed),
	}, nil
}

// shapeMaterial returns the material of the built-in primitives
func shapeMaterial(shape geometry.Shape) material.Material {
	switch s := shape.(type) {
	case *geometry.Sphere:
		return s.Material
	case *geometry.Rect:
		return s.Material
	case *geometry.Box:
		return s.Material
	}
	return nil
}

func validateSampling(config SamplingConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return errors.Wrapf(ErrInvalidScene, "image size %dx%d", config.Width, config.Height)
	}
	if config.SamplesPerPixel < 1 {
		return errors.Wrapf(ErrInvalidScene, "samples per pixel %d", config.SamplesPerPixel)
	}
	if config.MaxDepth < 1 {
		return errors.Wrapf(ErrInvalidScene, "max depth %d", config.MaxDepth)
	}
	return nil
}

func validateCamera(config renderer.CameraConfig) error {
	forward := config.LookAt.Subtract(config.Center)
	switch {
	case forward.NearZero():
		return errors.Wrap(ErrInvalidScene, "camera looks at its own position")
	case config.Up.Cross(forward).NearZero():
		return errors.Wrap(ErrInvalidScene, "camera up vector is parallel to the view direction")
	case !(config.VFov > 0 && config.VFov < 180):
		return errors.Wrap(ErrInvalidScene, fmt.Sprintf("vertical field of view %v outside (0, 180)", config.VFov))
	case !(config.AspectRatio > 0):
		return errors.Wrap(ErrInvalidScene, fmt.Sprintf("aspect ratio %v", config.AspectRatio))
	}
	return nil
}
