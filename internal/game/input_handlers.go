package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupInputHandlers routes window callbacks into the app.
func SetupInputHandlers(app *App) {
	window := app.window
	im := app.inputManager

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if app.mouseCaptured {
			app.camera.HandleMouseMovement(xpos, ypos)
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
		// clicking back into the window recaptures the mouse
		if !app.mouseCaptured && button == glfw.MouseButtonLeft && action == glfw.Press {
			app.setMouseCaptured(true)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})

	// Framebuffer size is in pixels, which differs from the window size on
	// high-DPI displays.
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	})

	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		app.renderer.UpdateViewport(width, height)
	})

	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused && app.mouseCaptured {
			app.setMouseCaptured(false)
		}
	})
}
