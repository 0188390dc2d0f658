package material

import "github.com/df07/go-pathtracer/pkg/core"

// fixedSampler returns the same value for every dimension so scattering is predictable.
// A value of 0.5 maps RandomInUnitSphere to the origin.
type fixedSampler struct {
	value float64
	next  []core.Vec3
}

func (s *fixedSampler) Get1D() float64 {
	return s.value
}

func (s *fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value, s.value)
}

func (s *fixedSampler) Get3D() core.Vec3 {
	if len(s.next) > 0 {
		v := s.next[0]
		s.next = s.next[1:]
		return v
	}
	return core.NewVec3(s.value, s.value, s.value)
}
