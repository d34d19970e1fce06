package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Point // Camera position (look from)
	LookAt        core.Point // Point the camera is looking at
	Up            core.Vec3  // Up direction (usually 0,1,0)
	VFov          float64    // Vertical field of view in degrees
	AspectRatio   float64    // Width / height
	Aperture      float64    // Lens aperture (0 = pinhole)
	FocusDistance float64    // Distance to focus plane (0 = distance to LookAt)
}

// MergeCameraConfig applies the non-zero fields of override on top of base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates rays for rendering. It is immutable once built, so one
// camera can serve every worker concurrently.
type Camera struct {
	origin          core.Point
	lowerLeftCorner core.Point
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
	config          CameraConfig
}

// NewCamera creates a positionable camera with depth of field
func NewCamera(config CameraConfig) *Camera {
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	origin := config.Center
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}
}

// GetRay generates a ray for image plane coordinates (s, t) where 0 <= s,t <= 1
// and (0, 0) is the lower left corner
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

// Forward returns the unit direction the camera looks along
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
