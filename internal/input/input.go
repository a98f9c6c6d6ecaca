package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionAscend
	ActionDescend
	ActionBoost
	ActionToggleWireframe
	ActionToggleStats
	ActionReseed
	ActionRadiusUp
	ActionRadiusDown
	ActionReleaseMouse
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionMoveForward:     "forward",
	ActionMoveBackward:    "backward",
	ActionMoveLeft:        "left",
	ActionMoveRight:       "right",
	ActionAscend:          "ascend",
	ActionDescend:         "descend",
	ActionBoost:           "boost",
	ActionToggleWireframe: "wireframe",
	ActionToggleStats:     "stats",
	ActionReseed:          "reseed",
	ActionRadiusUp:        "radius+",
	ActionRadiusDown:      "radius-",
	ActionReleaseMouse:    "release-mouse",
	ActionQuit:            "quit",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// InputManager manages keyboard and mouse input state and maps physical keys/buttons to logical actions
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	// Mouse button to action mapping
	mouseButtonToActions map[glfw.MouseButton][]Action

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Previous frame state (for edge detection)
	prevState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// Held inputs per action, and which physical inputs are down
	holders     [ActionCount]int
	keysDown    map[glfw.Key]bool
	buttonsDown map[glfw.MouseButton]bool
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
		keysDown:             make(map[glfw.Key]bool),
		buttonsDown:          make(map[glfw.MouseButton]bool),
	}

	// Set default key bindings
	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionAscend)
	im.BindKey(glfw.KeyLeftShift, ActionDescend)
	im.BindKey(glfw.KeyLeftControl, ActionBoost)
	im.BindKey(glfw.KeyF, ActionToggleWireframe)
	im.BindKey(glfw.Key1, ActionToggleWireframe)
	im.BindKey(glfw.KeyV, ActionToggleStats)
	im.BindKey(glfw.KeyR, ActionReseed)
	im.BindKey(glfw.KeyEqual, ActionRadiusUp)
	im.BindKey(glfw.KeyKPAdd, ActionRadiusUp)
	im.BindKey(glfw.KeyMinus, ActionRadiusDown)
	im.BindKey(glfw.KeyKPSubtract, ActionRadiusDown)
	im.BindKey(glfw.KeyTab, ActionReleaseMouse)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	im.BindMouseButton(glfw.MouseButtonRight, ActionBoost)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// UnbindMouseButton removes all action bindings for a mouse button
func (im *InputManager) UnbindMouseButton(button glfw.MouseButton) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.mouseButtonToActions, button)
}

// HandleKeyEvent processes a key event and updates internal state
// This can be called from a custom key callback
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}
	isPressed := action == glfw.Press || action == glfw.Repeat
	if im.keysDown[key] == isPressed {
		return
	}
	im.keysDown[key] = isPressed
	im.apply(actions, isPressed)
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state
// This can be called from a custom mouse button callback
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.mouseButtonToActions[button]
	if !exists {
		return
	}
	isPressed := action == glfw.Press
	if im.buttonsDown[button] == isPressed {
		return
	}
	im.buttonsDown[button] = isPressed
	im.apply(actions, isPressed)
}

// apply counts one more or one fewer held input for each action. An action
// stays active while any of its inputs is held. Caller holds mu.
func (im *InputManager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		if act < 0 || act >= ActionCount {
			continue
		}
		if isPressed {
			im.holders[act]++
		} else if im.holders[act] > 0 {
			im.holders[act]--
		}
		active := im.holders[act] > 0
		// Detect edges immediately when event arrives
		if active && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !active && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = active
	}
}

// SetKeyCallback sets up the GLFW key callback for this input manager
// This should be called once during initialization
func (im *InputManager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
}

// PostUpdate must be called at the end of each frame to update edge detection states
// This should be called after all input checks are done
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	// Reset edge flags and update prev state
	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
		im.prevState[i] = im.currentState[i]
	}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// Axis returns 1 while only pos is held, -1 while only neg is held and 0
// otherwise.
func (im *InputManager) Axis(neg, pos Action) float32 {
	var v float32
	if im.IsActive(pos) {
		v++
	}
	if im.IsActive(neg) {
		v--
	}
	return v
}

// SetMouseButtonCallback sets up the GLFW mouse button callback
func (im *InputManager) SetMouseButtonCallback(window *glfw.Window) {
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
}
