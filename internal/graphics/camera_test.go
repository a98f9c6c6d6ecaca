package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraStartsLookingNorth(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{0, 10, 0})
	if got := c.Front(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("Front() = %v, want (0, 0, -1)", got)
	}
	if got := c.Right(); !got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("Right() = %v, want (1, 0, 0)", got)
	}
}

func TestCameraPitchClamped(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{})
	c.HandleMouseMovement(100, 100)
	c.HandleMouseMovement(100, -5000)
	if c.Pitch != 89 {
		t.Errorf("pitch = %v, want 89", c.Pitch)
	}
	c.HandleMouseMovement(100, 5000)
	if c.Pitch != -89 {
		t.Errorf("pitch = %v, want -89", c.Pitch)
	}
}

func TestCameraFirstMouseEventOnlyRecords(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{})
	c.HandleMouseMovement(500, 500)
	if c.Yaw != -90 || c.Pitch != 0 {
		t.Fatalf("first event turned the camera to yaw %v pitch %v", c.Yaw, c.Pitch)
	}
	c.HandleMouseMovement(510, 500)
	if c.Yaw != -89 {
		t.Errorf("yaw = %v, want -89", c.Yaw)
	}
}

func TestCameraFly(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{0, 50, 0})
	c.Fly(1, 0, 0, 0.5, false)
	if !c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 50, -100}, 1e-3) {
		t.Errorf("after forward: %v, want (0, 50, -100)", c.Position)
	}

	c.Fly(0, 0, 1, 0.25, true)
	if !c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 250, -100}, 1e-3) {
		t.Errorf("after boosted climb: %v, want (0, 250, -100)", c.Position)
	}

	before := c.Position
	c.Fly(0, 0, 0, 1, true)
	if c.Position != before {
		t.Error("Fly with no input moved the camera")
	}
	if c.MaxStep(0.25) != 200 {
		t.Errorf("MaxStep(0.25) = %v, want 200", c.MaxStep(0.25))
	}
}

func TestCameraIgnoresEmptyViewport(t *testing.T) {
	c := NewCamera(800, 400, mgl32.Vec3{})
	c.SetViewport(0, 0)
	if c.AspectRatio != 2 {
		t.Errorf("aspect = %v, want 2", c.AspectRatio)
	}
}
