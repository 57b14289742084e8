// Package debugui renders Dear ImGui inspector windows for an ecs world.
// The windows live as entities in a separate UI world and look at a target
// world through a Target.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/zonefall/ecs"
)

// ImguiItem holds a render function called once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard, so game
// input can step aside.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers every ImguiItem's Render to the end of the frame and
// refreshes ImguiInputState.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := s.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}
	for item := range s.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Target is the world being inspected. Both methods are called every frame,
// so a target may swap its storage between frames.
type Target interface {
	Storage() *ecs.Storage
	Scheduler() *ecs.Scheduler
}
