package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Environment returns the color of light arriving from infinity along a direction.
// Directions need not be normalized.
type Environment interface {
	Lookup(direction Vec3) Vec3
}

// EnvironmentFunc adapts a plain function to the Environment interface
type EnvironmentFunc func(direction Vec3) Vec3

// Lookup calls f(direction)
func (f EnvironmentFunc) Lookup(direction Vec3) Vec3 {
	return f(direction)
}
