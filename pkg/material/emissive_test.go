package material

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestEmissive_NeverScatters(t *testing.T) {
	tests := []struct {
		name     string
		emission core.Vec3
	}{
		{"Red emission", core.NewVec3(1.0, 0.0, 0.0)},
		{"Zero emission", core.NewVec3(0.0, 0.0, 0.0)},
		{"High intensity emission", core.NewVec3(10.0, 5.0, 2.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emissive := NewEmissive(tt.emission)
			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
			hit := HitRecord{Point: core.NewVec3(1, 0, 0), T: 1.0, Material: emissive}
			hit.SetOutwardNormal(ray, core.NewVec3(-1, 0, 0))

			_, scattered := emissive.Scatter(ray, hit, core.NewRandomSampler(42))
			assert.False(t, scattered, "emissive material should not scatter rays")
			assert.Equal(t, tt.emission, Emitted(emissive))
		})
	}
}

func TestEmitted_DefaultsToBlack(t *testing.T) {
	materials := []Material{
		NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
		NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.1),
		NewDielectric(1.5),
	}
	for _, m := range materials {
		assert.Equal(t, core.Vec3{}, Emitted(m))
	}
}
