package scene

import (
	"github.com/spaghettifunk/aurora/engine/math"
)

type CameraProjection int

const (
	CameraProjectionOrthographic CameraProjection = iota
	CameraProjectionPerspective
	CameraProjectionFrustum
)

// Camera is a projection configuration record. It owns no GPU resources;
// its matrix feeds the global uniform buffer.
type Camera struct {
	Projection CameraProjection

	Near        float32
	Far         float32
	AspectRatio float32

	// Perspective only.
	FovRadians float32

	// Orthographic and frustum bounds.
	Left   float32
	Right  float32
	Bottom float32
	Top    float32
}

func NewPerspectiveCamera(fovRadians, aspect, near, far float32) Camera {
	return Camera{
		Projection:  CameraProjectionPerspective,
		FovRadians:  fovRadians,
		AspectRatio: aspect,
		Near:        near,
		Far:         far,
	}
}

func NewOrthographicCamera(left, right, bottom, top, near, far float32) Camera {
	return Camera{
		Projection: CameraProjectionOrthographic,
		Left:       left, Right: right, Bottom: bottom, Top: top,
		Near: near, Far: far,
		AspectRatio: safeDiv(right-left, top-bottom),
	}
}

func NewFrustumCamera(left, right, bottom, top, near, far float32) Camera {
	return Camera{
		Projection: CameraProjectionFrustum,
		Left:       left, Right: right, Bottom: bottom, Top: top,
		Near: near, Far: far,
		AspectRatio: safeDiv(right-left, top-bottom),
	}
}

func (c Camera) ProjectionMatrix() math.Mat4 {
	switch c.Projection {
	case CameraProjectionPerspective:
		return math.NewMat4Perspective(c.FovRadians, c.AspectRatio, c.Near, c.Far)
	case CameraProjectionFrustum:
		return math.NewMat4Frustum(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	default:
		return math.NewMat4Orthographic(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	}
}

type LightKind int

const (
	LightKindDirectional LightKind = iota
	LightKindPoint
	LightKindSpot
)

// Light is a tagged light record. Attenuation applies to point and spot
// lights; the cone angles to spot lights only.
type Light struct {
	Kind LightKind

	Color     math.Vec3
	Intensity float32

	// Directional and spot.
	Direction math.Vec3

	// Point and spot attenuation factors.
	ConstantAttenuation  float32
	LinearAttenuation    float32
	QuadraticAttenuation float32

	// Spot cone, in radians.
	InnerCutoff float32
	OuterCutoff float32
}

func NewDirectionalLight(direction, color math.Vec3, intensity float32) Light {
	return Light{
		Kind:      LightKindDirectional,
		Direction: direction.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

func NewPointLight(color math.Vec3, intensity, constant, linear, quadratic float32) Light {
	return Light{
		Kind:                 LightKindPoint,
		Color:                color,
		Intensity:            intensity,
		ConstantAttenuation:  constant,
		LinearAttenuation:    linear,
		QuadraticAttenuation: quadratic,
	}
}

func NewSpotLight(direction, color math.Vec3, intensity, innerCutoff, outerCutoff float32) Light {
	return Light{
		Kind:        LightKindSpot,
		Direction:   direction.Normalize(),
		Color:       color,
		Intensity:   intensity,
		InnerCutoff: innerCutoff,
		OuterCutoff: outerCutoff,
		// Sensible defaults so a spot light attenuates at all.
		ConstantAttenuation:  1.0,
		LinearAttenuation:    0.09,
		QuadraticAttenuation: 0.032,
	}
}
