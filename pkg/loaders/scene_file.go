// Package loaders reads scene descriptions from YAML files.
package loaders

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidDescription is returned for scene files that parse but describe
// something that cannot be built
var ErrInvalidDescription = errors.New("invalid scene description")

// SceneFile is the YAML layout of a scene description
type SceneFile struct {
	Name       string          `yaml:"name"`
	Camera     CameraSpec      `yaml:"camera"`
	Background *BackgroundSpec `yaml:"background"`
	Sampling   *SamplingSpec   `yaml:"sampling"`
	BVHSeed    uint64          `yaml:"bvhSeed"`
	Materials  []MaterialSpec  `yaml:"materials"`
	Primitives []PrimitiveSpec `yaml:"primitives"`
}

// CameraSpec describes the pinhole camera
type CameraSpec struct {
	Center Vec3    `yaml:"center"`
	LookAt Vec3    `yaml:"lookAt"`
	Up     *Vec3   `yaml:"up"` // Defaults to +Y
	VFov   float64 `yaml:"vfov"`
}

// BackgroundSpec describes the sky gradient
type BackgroundSpec struct {
	Top    Vec3 `yaml:"top"`
	Bottom Vec3 `yaml:"bottom"`
}

// SamplingSpec describes the recommended render settings
type SamplingSpec struct {
	Width           int `yaml:"width"`
	Height          int `yaml:"height"`
	SamplesPerPixel int `yaml:"samplesPerPixel"`
	MaxDepth        int `yaml:"maxDepth"`
}

// MaterialSpec describes one named material. Fields not used by Type are ignored.
type MaterialSpec struct {
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"` // lambertian, metal, dielectric or emissive
	Albedo   *Vec3   `yaml:"albedo"`
	Fuzz     float64 `yaml:"fuzz"`
	IOR      float64 `yaml:"ior"`
	Emission Vec3    `yaml:"emission"`
}

// PrimitiveSpec describes one sphere, axis-aligned rectangle or box
type PrimitiveSpec struct {
	Type     string     `yaml:"type"` // sphere, rect or box
	Material string     `yaml:"material"`
	Center   Vec3       `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Axis     string     `yaml:"axis"` // Fixed axis of a rect: x, y or z
	K        float64    `yaml:"k"`
	Min      [2]float64 `yaml:"min"`
	Max      [2]float64 `yaml:"max"`
	Flip     bool       `yaml:"flip"`
	From     Vec3       `yaml:"from"` // Box corners
	To       Vec3       `yaml:"to"`

	line int
}

// Vec3 is a YAML triple such as [0.5, 0.7, 1.0]
type Vec3 core.Vec3

// UnmarshalYAML accepts a three-element sequence
func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	var xyz []float64
	if err := node.Decode(&xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return errors.Errorf("line %d: expected 3 components, got %d", node.Line, len(xyz))
	}
	*v = Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

// primitiveKeys lists the yaml keys PrimitiveSpec accepts. Decoding through a
// custom unmarshaler drops the decoder's KnownFields setting, so they are
// checked by hand.
var primitiveKeys = map[string]bool{
	"type": true, "material": true, "center": true, "radius": true,
	"axis": true, "k": true, "min": true, "max": true, "flip": true,
	"from": true, "to": true,
}

// UnmarshalYAML rejects unknown keys and records the source line for error messages
func (p *PrimitiveSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if !primitiveKeys[key.Value] {
				return errors.Wrapf(ErrInvalidDescription, "line %d: unknown primitive field %q", key.Line, key.Value)
			}
		}
	}
	type plain PrimitiveSpec
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}
	p.line = node.Line
	return nil
}

// LoadSceneFile reads and builds the scene described by the YAML file at path.
// The scene name defaults to the file name without extension.
func LoadSceneFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scene file")
	}

	defaultName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := parseScene(data, defaultName)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return s, nil
}

// ParseScene builds the scene described by YAML data
func ParseScene(data []byte) (*scene.Scene, error) {
	return parseScene(data, "custom")
}

func parseScene(data []byte, defaultName string) (*scene.Scene, error) {
	file, err := decodeSceneFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if file.Name == "" {
		file.Name = defaultName
	}
	return file.Build()
}

func decodeSceneFile(r io.Reader) (*SceneFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file SceneFile
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(ErrInvalidDescription, "empty document")
		}
		return nil, errors.Wrap(err, "parsing scene YAML")
	}
	return &file, nil
}

// Build turns the description into a scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	b := scene.NewBuilder(f.Name)

	up := core.NewVec3(0, 1, 0)
	if f.Camera.Up != nil {
		up = core.Vec3(*f.Camera.Up)
	}
	b.SetCamera(renderer.CameraConfig{
		Center: core.Vec3(f.Camera.Center),
		LookAt: core.Vec3(f.Camera.LookAt),
		Up:     up,
		VFov:   f.Camera.VFov,
	})
	if f.Background != nil {
		b.SetBackground(core.Vec3(f.Background.Top), core.Vec3(f.Background.Bottom))
	}
	if f.Sampling != nil {
		b.SetSampling(scene.SamplingConfig{
			Width:           f.Sampling.Width,
			Height:          f.Sampling.Height,
			SamplesPerPixel: f.Sampling.SamplesPerPixel,
			MaxDepth:        f.Sampling.MaxDepth,
		})
	}
	b.SetBVHSeed(f.BVHSeed)

	for _, desc := range f.Materials {
		if desc.Name == "" {
			return nil, errors.Wrapf(ErrInvalidDescription, "material of type %q has no name", desc.Type)
		}
		if _, exists := b.Material(desc.Name); exists {
			return nil, errors.Wrapf(ErrInvalidDescription, "material %q defined twice", desc.Name)
		}
		m, err := desc.build()
		if err != nil {
			return nil, err
		}
		b.AddMaterial(desc.Name, m)
	}

	if len(f.Primitives) == 0 {
		return nil, errors.Wrap(scene.ErrEmptyScene, "no primitives")
	}
	for i, desc := range f.Primitives {
		m, ok := b.Material(desc.Material)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidDescription, "primitive %d (line %d) uses undefined material %q", i, desc.line, desc.Material)
		}
		shape, err := desc.build(m)
		if err != nil {
			return nil, errors.Wrapf(err, "primitive %d (line %d)", i, desc.line)
		}
		b.AddShape(shape)
	}

	return b.Build()
}

func (desc MaterialSpec) build() (material.Material, error) {
	albedo := core.NewVec3(1, 1, 1)
	if desc.Albedo != nil {
		albedo = core.Vec3(*desc.Albedo)
	}

	switch strings.ToLower(desc.Type) {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		return material.NewMetal(albedo, desc.Fuzz), nil
	case "dielectric":
		if !(desc.IOR > 0) {
			return nil, errors.Wrapf(ErrInvalidDescription, "dielectric %q needs a positive ior", desc.Name)
		}
		return material.NewTintedDielectric(albedo, desc.IOR), nil
	case "emissive":
		return material.NewEmissive(core.Vec3(desc.Emission)), nil
	}
	return nil, errors.Wrapf(ErrInvalidDescription, "material %q has unknown type %q", desc.Name, desc.Type)
}

func (desc PrimitiveSpec) build(m material.Material) (geometry.Shape, error) {
	switch strings.ToLower(desc.Type) {
	case "sphere":
		if !(desc.Radius > 0) {
			return nil, errors.Wrapf(ErrInvalidDescription, "sphere radius %v", desc.Radius)
		}
		return geometry.NewSphere(core.Vec3(desc.Center), desc.Radius, m), nil
	case "rect":
		if !(desc.Min[0] < desc.Max[0] && desc.Min[1] < desc.Max[1]) {
			return nil, errors.Wrapf(ErrInvalidDescription, "rect bounds %v to %v are empty", desc.Min, desc.Max)
		}
		u0, u1, v0, v1 := desc.Min[0], desc.Max[0], desc.Min[1], desc.Max[1]
		switch strings.ToLower(desc.Axis) {
		case "x":
			return geometry.NewRectYZ(u0, u1, v0, v1, desc.K, desc.Flip, m), nil
		case "y":
			return geometry.NewRectXZ(u0, u1, v0, v1, desc.K, desc.Flip, m), nil
		case "z":
			return geometry.NewRectXY(u0, u1, v0, v1, desc.K, desc.Flip, m), nil
		}
		return nil, errors.Wrapf(ErrInvalidDescription, "rect axis %q is not x, y or z", desc.Axis)
	case "box":
		return geometry.NewBox(core.Vec3(desc.From), core.Vec3(desc.To), m), nil
	}
	return nil, errors.Wrapf(ErrInvalidDescription, "unknown primitive type %q", desc.Type)
}
