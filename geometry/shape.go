// Package geometry is a descriptor kernel. Its artifacts record what a solid
// is made of rather than its boundary representation, which is enough to
// drive and inspect component pipelines.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidGeometry is returned when a dimension is not positive or a
// feature does not fit its base.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Kind names a base solid or a feature.
type Kind string

// The kinds the kernel knows about.
const (
	KindBox      Kind = "box"
	KindCylinder Kind = "cylinder"
	KindFillet   Kind = "fillet"
	KindHole     Kind = "hole"
)

// Dimensions maps a dimension name to its size in millimetres.
type Dimensions map[string]float64

func (d Dimensions) clone() Dimensions {
	c := make(Dimensions, len(d))
	for k, v := range d {
		c[k] = v
	}

	return c
}

func (d Dimensions) String() string {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s=%g", n, d[n]))
	}

	return strings.Join(parts, " ")
}

// A Feature is a modification applied to a base solid.
type Feature struct {
	Kind       Kind
	Dimensions Dimensions
}

// A Shape describes a solid as a base with features applied in order. Shapes
// are values; applying a feature creates a new shape.
type Shape struct {
	Kind       Kind
	Dimensions Dimensions
	Features   []Feature
}

func (s Shape) with(f Feature) Shape {
	features := make([]Feature, len(s.Features), len(s.Features)+1)
	copy(features, s.Features)

	return Shape{
		Kind:       s.Kind,
		Dimensions: s.Dimensions.clone(),
		Features:   append(features, f),
	}
}

// BoundingVolume returns the volume of the base solid, features ignored.
func (s Shape) BoundingVolume() float64 {
	switch s.Kind {
	case KindBox:
		return s.Dimensions["length"] * s.Dimensions["width"] * s.Dimensions["height"]
	case KindCylinder:
		r := s.Dimensions["radius"]
		return math.Pi * r * r * s.Dimensions["height"]
	default:
		return 0
	}
}

// smallestExtent returns the smallest cross-section extent of the base.
func (s Shape) smallestExtent() float64 {
	switch s.Kind {
	case KindBox:
		return math.Min(s.Dimensions["length"],
			math.Min(s.Dimensions["width"], s.Dimensions["height"]))
	case KindCylinder:
		return math.Min(2*s.Dimensions["radius"], s.Dimensions["height"])
	default:
		return 0
	}
}

func (s Shape) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s(%s)", s.Kind, s.Dimensions)
	for _, f := range s.Features {
		fmt.Fprintf(&b, " + %s(%s)", f.Kind, f.Dimensions)
	}

	return b.String()
}

func mustBePositive(kind Kind, name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s %s must be positive and finite, got %g",
			ErrInvalidGeometry, kind, name, v)
	}

	return nil
}
