package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Operations(t *testing.T) {
	tolerance := 1e-9

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", NewVec3(1, 2, 3).Add(NewVec3(4, 5, 6)), NewVec3(5, 7, 9)},
		{"Subtract", NewVec3(4, 5, 6).Subtract(NewVec3(1, 2, 3)), NewVec3(3, 3, 3)},
		{"MultiplyVec", NewVec3(1, 2, 3).MultiplyVec(NewVec3(2, 0.5, -1)), NewVec3(2, 1, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Normalize", NewVec3(3, 0, 4).Normalize(), NewVec3(0.6, 0, 0.8)},
		{"Normalize zero", Vec3{}.Normalize(), Vec3{}},
		{"Lerp", NewVec3(1, 1, 1).Lerp(NewVec3(0.5, 0.7, 1.0), 0.5), NewVec3(0.75, 0.85, 1.0)},
		{"Sqrt", NewVec3(0.25, 1, -1).Sqrt(), NewVec3(0.5, 1, 0)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.got.Equals(tt.expected, tolerance), "got %v, expected %v", tt.got, tt.expected)
		})
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	assert.Equal(t, 1.0, v.Axis(0))
	assert.Equal(t, 2.0, v.Axis(1))
	assert.Equal(t, 3.0, v.Axis(2))
	assert.Panics(t, func() { v.Axis(3) })
}

func TestVec3_IsFinite(t *testing.T) {
	assert.True(t, NewVec3(1, 2, 3).IsFinite())
	assert.False(t, NewVec3(math.NaN(), 0, 0).IsFinite())
	assert.False(t, NewVec3(0, math.Inf(-1), 0).IsFinite())
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	assert.Equal(t, NewVec3(1, 3, 0), ray.At(1.5))
}
