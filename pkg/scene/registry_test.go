package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"spheregrid", "Spheregrid"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, titleCase(tc.input))
		})
	}
}

func TestList(t *testing.T) {
	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		assert.NotEmpty(t, info.Description, info.ID)
		assert.NotEmpty(t, info.DisplayName, info.ID)
	}
	assert.Equal(t, []string{"cornell", "cornell-boxes", "default", "lambert", "spheregrid"}, ids)
}

func TestNew_BuiltinScenes(t *testing.T) {
	tests := []struct {
		name       string
		primitives int
	}{
		{"cornell", 8},
		{"cornell-boxes", 8},
		{"default", 5},
		{"lambert", 4},
		{"spheregrid", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.primitives, s.GetPrimitiveCount())
			assert.Equal(t, tt.primitives, s.BVH.Stats().Shapes)
			assert.True(t, s.BVH.BoundingBox().IsValid())
		})
	}
}

func TestNew_UnknownScene(t *testing.T) {
	s, err := New("teapot")
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, ErrUnknownScene))
	assert.Contains(t, err.Error(), "teapot")
}

func TestCornellScene_Layout(t *testing.T) {
	s, err := NewCornellScene()
	require.NoError(t, err)

	assert.Equal(t, core.Vec3{}, s.BackgroundColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))))
	assert.Equal(t, 500, s.SamplingConfig.SamplesPerPixel)
	assert.Len(t, s.Materials, 6)

	// Straight up from the floor, clear of both spheres, hits the light panel
	hit, ok := s.Intersect(core.NewRay(core.NewVec3(320, 1, 300), core.NewVec3(0, 1, 0)))
	require.True(t, ok)
	assert.InDelta(t, 553.0, hit.T, 1e-9)
	assert.Same(t, s.Materials["light"], hit.Material)
	assert.Equal(t, core.NewVec3(15, 15, 15), material.Emitted(hit.Material))

	// The camera sees through the open front onto the back wall
	hit, ok = s.Intersect(core.NewRay(core.NewVec3(278, 500, -800), core.NewVec3(0, 0, 1)))
	require.True(t, ok)
	assert.Same(t, s.Materials["white"], hit.Material)
	assert.InDelta(t, 1355.0, hit.T, 1e-9)
	assert.True(t, hit.FrontFace)
}

func TestLambertScene_Deterministic(t *testing.T) {
	render := func(workers int) *renderer.Image {
		s, err := NewLambertScene()
		require.NoError(t, err)

		const width, height = 48, 27
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
		camera := renderer.NewCamera(s.CameraConfig)

		pt := renderer.NewPathTracer(
			integrator.NewPathTracingIntegrator(s.SamplingConfig.MaxDepth),
			renderer.Config{TileSize: 8, NumWorkers: workers, Seed: 42},
			nil,
		)
		img := renderer.NewImage(width, height)
		_, err = pt.Run(s, camera, img, 1)
		require.NoError(t, err)
		return img
	}

	first := render(1)
	second := render(6)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("renders differ between runs (-first +second):\n%s", diff)
	}

	var total float64
	for i, c := range first.Pixels {
		require.True(t, c.IsFinite(), "pixel %d", i)
		total += c.Luminance()
	}
	assert.Greater(t, total/float64(len(first.Pixels)), 0.1, "sky light reaches the camera")
}

func TestScene_IntersectIgnoresSelfHits(t *testing.T) {
	s, err := NewLambertScene()
	require.NoError(t, err)

	// A ray leaving the ground from its surface must not hit the ground again
	_, ok := s.Intersect(core.NewRay(core.NewVec3(5, 0, 5), core.NewVec3(0, 1, 0)))
	assert.False(t, ok)

	hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 3, -1), core.NewVec3(0, -1, 0)))
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.T, 1e-9)
	assert.IsType(t, &material.Lambertian{}, hit.Material)
}

func TestOklchToRGB(t *testing.T) {
	tests := []struct {
		name                   string
		lightness, chroma, hue float64
		want                   core.Vec3
	}{
		{"black", 0, 0, 0, core.Vec3{}},
		{"white", 1, 0, 0, core.NewVec3(1, 1, 1)},
		{"mid gray", 0.5, 0, 180, core.NewVec3(0.125, 0.125, 0.125)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oklchToRGB(tt.lightness, tt.chroma, tt.hue)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
				t.Errorf("oklchToRGB mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
