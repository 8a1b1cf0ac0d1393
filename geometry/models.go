package geometry

import (
	"fmt"

	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/param"
)

// The specification keys the kernel reads.
const (
	KeyLength       param.Key = "Length"
	KeyWidth        param.Key = "Width"
	KeyHeight       param.Key = "Height"
	KeyRadius       param.Key = "Radius"
	KeyFilletRadius param.Key = "FilletRadius"
	KeyHoleDiameter param.Key = "HoleDiameter"
)

func readDimensions(
	kind Kind,
	params *param.Container,
	keys map[string]param.Key,
) (Dimensions, error) {
	dims := make(Dimensions, len(keys))

	for name, key := range keys {
		q, err := params.Value(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", component.ErrSpecificationIncomplete, err)
		}

		if err := mustBePositive(kind, name, q.Value); err != nil {
			return nil, err
		}

		dims[name] = q.Value
	}

	return dims, nil
}

// Box builds a rectangular block.
type Box struct{}

// ConstructArtifact returns the box Shape.
func (Box) ConstructArtifact(params *param.Container) (component.Artifact, error) {
	dims, err := readDimensions(KindBox, params, map[string]param.Key{
		"length": KeyLength,
		"width":  KeyWidth,
		"height": KeyHeight,
	})
	if err != nil {
		return nil, err
	}

	return Shape{Kind: KindBox, Dimensions: dims}, nil
}

// Cylinder builds a right circular cylinder.
type Cylinder struct{}

// ConstructArtifact returns the cylinder Shape.
func (Cylinder) ConstructArtifact(params *param.Container) (component.Artifact, error) {
	dims, err := readDimensions(KindCylinder, params, map[string]param.Key{
		"radius": KeyRadius,
		"height": KeyHeight,
	})
	if err != nil {
		return nil, err
	}

	return Shape{Kind: KindCylinder, Dimensions: dims}, nil
}

func asShape(a component.Artifact) (Shape, error) {
	s, ok := a.(Shape)
	if !ok {
		return Shape{}, fmt.Errorf("%w: %T is not a shape", ErrInvalidGeometry, a)
	}

	return s, nil
}

func asFeature(a component.Artifact) (Feature, error) {
	f, ok := a.(Feature)
	if !ok {
		return Feature{}, fmt.Errorf("%w: %T is not a feature", ErrInvalidGeometry, a)
	}

	return f, nil
}

// Fillet rounds the edges of a solid.
type Fillet struct{}

// ConstructModifier returns the fillet Feature.
func (Fillet) ConstructModifier(params *param.Container) (component.Artifact, error) {
	dims, err := readDimensions(KindFillet, params, map[string]param.Key{
		"radius": KeyFilletRadius,
	})
	if err != nil {
		return nil, err
	}

	return Feature{Kind: KindFillet, Dimensions: dims}, nil
}

// Apply adds the fillet if it fits the smallest extent of the base.
func (Fillet) Apply(base, mod component.Artifact) (component.Artifact, error) {
	s, err := asShape(base)
	if err != nil {
		return nil, err
	}

	f, err := asFeature(mod)
	if err != nil {
		return nil, err
	}

	if r := f.Dimensions["radius"]; 2*r >= s.smallestExtent() {
		return nil, fmt.Errorf("%w: fillet radius %g does not fit %s",
			ErrInvalidGeometry, r, s)
	}

	return s.with(f), nil
}

// Hole drills a through hole along the height of a solid.
type Hole struct{}

// ConstructModifier returns the hole Feature.
func (Hole) ConstructModifier(params *param.Container) (component.Artifact, error) {
	dims, err := readDimensions(KindHole, params, map[string]param.Key{
		"diameter": KeyHoleDiameter,
	})
	if err != nil {
		return nil, err
	}

	return Feature{Kind: KindHole, Dimensions: dims}, nil
}

// Apply adds the hole if it is narrower than the base.
func (Hole) Apply(base, mod component.Artifact) (component.Artifact, error) {
	s, err := asShape(base)
	if err != nil {
		return nil, err
	}

	f, err := asFeature(mod)
	if err != nil {
		return nil, err
	}

	var room float64
	switch s.Kind {
	case KindBox:
		room = min(s.Dimensions["length"], s.Dimensions["width"])
	case KindCylinder:
		room = 2 * s.Dimensions["radius"]
	}

	if d := f.Dimensions["diameter"]; d >= room {
		return nil, fmt.Errorf("%w: hole diameter %g does not fit %s",
			ErrInvalidGeometry, d, s)
	}

	return s.with(f), nil
}

var (
	_ component.Model    = Box{}
	_ component.Model    = Cylinder{}
	_ component.Modifier = Fillet{}
	_ component.Modifier = Hole{}
)
