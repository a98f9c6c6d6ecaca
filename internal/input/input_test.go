package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestEdgeDetection(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyR, glfw.Press)
	if !im.JustPressed(ActionReseed) || !im.IsActive(ActionReseed) {
		t.Fatal("press not reported")
	}

	// Key repeat keeps the action held without a second edge.
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyR, glfw.Repeat)
	if im.JustPressed(ActionReseed) {
		t.Error("repeat reported as a new press")
	}
	if !im.IsActive(ActionReseed) {
		t.Error("repeat released the action")
	}

	im.HandleKeyEvent(glfw.KeyR, glfw.Release)
	if !im.JustReleased(ActionReseed) || im.IsActive(ActionReseed) {
		t.Error("release not reported")
	}
	im.PostUpdate()
	if im.JustReleased(ActionReseed) {
		t.Error("release edge survived PostUpdate")
	}
}

func TestSeveralKeysShareAnAction(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	if !im.IsActive(ActionMoveForward) {
		t.Fatal("arrow key does not move forward")
	}
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	if im.IsActive(ActionMoveForward) {
		t.Error("releasing W released the action although Up is bound too")
	}
}

func TestAxis(t *testing.T) {
	im := NewInputManager()
	if got := im.Axis(ActionDescend, ActionAscend); got != 0 {
		t.Fatalf("idle axis = %v", got)
	}
	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	if got := im.Axis(ActionDescend, ActionAscend); got != 1 {
		t.Errorf("ascend axis = %v, want 1", got)
	}
	im.HandleKeyEvent(glfw.KeyLeftShift, glfw.Press)
	if got := im.Axis(ActionDescend, ActionAscend); got != 0 {
		t.Errorf("opposing keys axis = %v, want 0", got)
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	for a := range ActionCount {
		if im.IsActive(a) {
			t.Errorf("%v active after an unbound key", a)
		}
	}
	if im.IsActive(ActionCount) || im.JustPressed(-1) {
		t.Error("out-of-range actions must read as inactive")
	}
}

func TestBoostFromMouse(t *testing.T) {
	im := NewInputManager()
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	if !im.JustPressed(ActionBoost) {
		t.Fatal("right mouse does not boost")
	}
	im.UnbindMouseButton(glfw.MouseButtonRight)
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Release)
	if !im.IsActive(ActionBoost) {
		t.Error("unbound button still changed state")
	}
}
