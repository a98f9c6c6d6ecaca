package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	WinWidth  = 1000
	WinHeight = 1000
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a free-flying first-person camera. Angles are in degrees; yaw
// -90 looks down -Z.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float64
	Pitch    float64

	// Speed is the cruise speed in world units per second. Boost multiplies it.
	Speed       float32
	Boost       float32
	Sensitivity float64

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	firstMouse bool
	lastX      float64
	lastY      float64
}

func NewCamera(width, height int, pos mgl32.Vec3) *Camera {
	c := &Camera{
		Position:    pos,
		Yaw:         -90,
		Speed:       200,
		Boost:       4,
		Sensitivity: 0.1,
		FOV:         45,
		NearPlane:   0.1,
		FarPlane:    10000,
		firstMouse:  true,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. A zero height (minimised window) is
// ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), worldUp)
}

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(float32(c.Yaw)))
	p := float64(mgl32.DegToRad(float32(c.Pitch)))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Right returns the unit vector to the camera's right, parallel to the ground.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(worldUp).Normalize()
}

func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	xoffset := (xpos - c.lastX) * c.Sensitivity
	yoffset := (c.lastY - ypos) * c.Sensitivity
	c.lastX = xpos
	c.lastY = ypos

	c.Yaw += xoffset
	c.Pitch += yoffset

	// Constrain pitch
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// ResetMouse makes the next mouse event only record the cursor position.
func (c *Camera) ResetMouse() {
	c.firstMouse = true
}

// Fly moves the camera. forward and right follow the view direction, up
// follows the world Y axis; each is in [-1, 1].
func (c *Camera) Fly(forward, right, up float32, dt float64, boost bool) {
	dir := c.Front().Mul(forward).Add(c.Right().Mul(right)).Add(worldUp.Mul(up))
	if dir.Len() == 0 {
		return
	}
	speed := c.Speed
	if boost {
		speed *= c.Boost
	}
	c.Position = c.Position.Add(dir.Normalize().Mul(speed * float32(dt)))
}

// MaxStep returns the farthest the camera can travel in dt.
func (c *Camera) MaxStep(dt float64) float32 {
	return c.Speed * c.Boost * float32(dt)
}
