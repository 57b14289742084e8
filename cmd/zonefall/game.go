package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/zonefall/ecs"
	"github.com/plus3/zonefall/ecs/debugui"
	debugui_ebiten "github.com/plus3/zonefall/ecs/debugui/ebiten"
	"github.com/plus3/zonefall/game"
	"github.com/plus3/zonefall/input"
	"github.com/plus3/zonefall/zone"
)

// Key repeat, in ticks, for keys held down.
const (
	repeatDelay    = 12
	repeatInterval = 3
)

// defaultKeymap binds four players. Player count changes from the keyboard
// and the debug UI stop there, since extra players would have no keys.
var defaultKeymap = input.Keymap[ebiten.Key]{
	ebiten.KeyA:     input.Press(0, game.MoveLeft),
	ebiten.KeyD:     input.Press(0, game.MoveRight),
	ebiten.KeyS:     input.Press(0, game.SoftDrop),
	ebiten.KeyW:     input.TapOrHold(0, game.Rotate, game.HardDrop),
	ebiten.KeySpace: input.Press(0, game.HardDrop),

	ebiten.KeyArrowLeft:  input.Press(1, game.MoveLeft),
	ebiten.KeyArrowRight: input.Press(1, game.MoveRight),
	ebiten.KeyArrowDown:  input.Press(1, game.SoftDrop),
	ebiten.KeyArrowUp:    input.TapOrHold(1, game.Rotate, game.HardDrop),
	ebiten.KeyEnter:      input.Press(1, game.HardDrop),

	ebiten.KeyJ: input.Press(2, game.MoveLeft),
	ebiten.KeyL: input.Press(2, game.MoveRight),
	ebiten.KeyK: input.Press(2, game.SoftDrop),
	ebiten.KeyI: input.TapOrHold(2, game.Rotate, game.HardDrop),
	ebiten.KeyU: input.Press(2, game.HardDrop),

	ebiten.KeyNumpad4: input.Press(3, game.MoveLeft),
	ebiten.KeyNumpad6: input.Press(3, game.MoveRight),
	ebiten.KeyNumpad5: input.Press(3, game.SoftDrop),
	ebiten.KeyNumpad8: input.TapOrHold(3, game.Rotate, game.HardDrop),
	ebiten.KeyNumpad0: input.Press(3, game.HardDrop),
}

// Game implements ebiten.Game. The engine ticks in Update; the ImGui
// frame is built in Update as well and drawn last in Draw.
type Game struct {
	Engine      *game.Engine
	Controller  *input.Controller[ebiten.Key]
	UI          *ecs.Storage
	UIScheduler *ecs.Scheduler
	Backend     *ecs.Singleton[debugui_ebiten.ImguiBackend]

	recordFrame func(time.Duration)
	log         *zap.Logger
	lastUpdate  time.Time
	showDebug   bool
	focused     bool
	keys        []ebiten.Key
	snapshot    game.Snapshot
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	now := time.Now()
	if !g.lastUpdate.IsZero() {
		g.recordFrame(now.Sub(g.lastUpdate))
	}
	g.lastUpdate = now

	backend := g.Backend.Get()
	backend.BeginFrame()
	if g.showDebug {
		g.UIScheduler.Once(dt)
	}
	backend.EndFrame()

	g.handleInput(dt)
	g.Engine.Tick(dt)
	g.snapshot = g.Engine.Snapshot()
	return nil
}

func (g *Game) uiWantsKeyboard() bool {
	var state *debugui.ImguiInputState
	return g.showDebug && g.UI.ReadSingleton(&state) && state.WantCaptureKeyboard
}

func (g *Game) handleInput(dt time.Duration) {
	focused := ebiten.IsFocused()
	if !focused && g.focused {
		g.Controller.Reset()
	}
	g.focused = focused

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
		g.log.Debug("debug overlay", zap.Bool("visible", g.showDebug))
	}
	if g.uiWantsKeyboard() {
		g.Controller.Reset()
		return
	}
	g.handleControls()

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.Controller.Press(k)
	}
	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		d := inpututil.KeyPressDuration(k)
		if d > repeatDelay && (d-repeatDelay)%repeatInterval == 0 {
			g.Controller.Press(k)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.Controller.Release(k)
	}
	g.Controller.Advance(dt)
}

// handleControls maps the lifecycle keys to control events.
func (g *Game) handleControls() {
	snap := &g.snapshot
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if snap.Status == game.StatusReady {
			g.Engine.Submit(game.Start{})
		} else {
			g.Engine.Submit(game.Restart{})
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.Engine.Submit(game.TogglePause{})
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.Engine.Submit(game.ToggleSound{On: !snap.Sound})
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		mode := zone.Chaos
		if snap.Mode == zone.Chaos {
			mode = zone.Lanes
		}
		g.Engine.Submit(game.SetGameMode{Mode: mode})
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.Engine.Submit(game.SetPlayerCount{Count: min(len(snap.Players)+1, defaultKeymap.Players())})
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.Engine.Submit(game.SetPlayerCount{Count: len(snap.Players) - 1})
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.Engine.Submit(game.SetShiftInterval{Seconds: int(snap.ShiftInterval/time.Second) - 5})
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.Engine.Submit(game.SetShiftInterval{Seconds: int(snap.ShiftInterval/time.Second) + 5})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawGame(screen, &g.snapshot)
	if g.showDebug {
		g.Backend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
