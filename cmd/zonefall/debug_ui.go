package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/zonefall/ecs"
	"github.com/plus3/zonefall/ecs/debugui"
	"github.com/plus3/zonefall/game"
	"github.com/plus3/zonefall/zone"
)

func vec4(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
}

func spawnControlWindow(ui *ecs.Storage, engine *game.Engine) {
	var (
		players int32
		shift   int32
	)
	ui.Spawn(debugui.ImguiItem{
		Render: func() {
			snap := engine.Snapshot()

			imgui.SetNextWindowPosV(imgui.NewVec2(860, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(260, 240), imgui.CondOnce)
			if !imgui.BeginV("Run Control", nil, 0) {
				imgui.End()
				return
			}

			imgui.Text(fmt.Sprintf("Run %s", snap.RunID.String()[:8]))
			switch snap.Status {
			case game.StatusRunning:
				imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
			case game.StatusGameOver:
				imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), fmt.Sprintf("GAME OVER (P%d, %s)", snap.Loser+1, snap.Reason))
			default:
				imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), snap.Status.String())
			}

			if snap.Status == game.StatusReady && imgui.Button("Start") {
				engine.Submit(game.Start{})
			}
			if snap.Status == game.StatusRunning || snap.Status == game.StatusPaused {
				if imgui.Button("Pause / Resume") {
					engine.Submit(game.TogglePause{})
				}
			}
			imgui.SameLine()
			if imgui.Button("Restart") {
				engine.Submit(game.Restart{})
			}

			imgui.Separator()
			sound := snap.Sound
			if imgui.Checkbox("Sound", &sound) {
				engine.Submit(game.ToggleSound{On: sound})
			}
			if imgui.Button(fmt.Sprintf("Mode: %s", snap.Mode)) {
				mode := zone.Chaos
				if snap.Mode == zone.Chaos {
					mode = zone.Lanes
				}
				engine.Submit(game.SetGameMode{Mode: mode})
			}

			players = int32(len(snap.Players))
			imgui.SetNextItemWidth(100)
			if imgui.InputInt("Players", &players) {
				engine.Submit(game.SetPlayerCount{Count: min(int(players), defaultKeymap.Players())})
			}
			shift = int32(snap.ShiftInterval / time.Second)
			imgui.SetNextItemWidth(100)
			if imgui.InputInt("Shift (s)", &shift) {
				engine.Submit(game.SetShiftInterval{Seconds: int(shift)})
			}
			imgui.End()
		},
	})
}

func spawnPlayersWindow(ui *ecs.Storage, engine *game.Engine) {
	ui.Spawn(debugui.ImguiItem{
		Render: func() {
			snap := engine.Snapshot()

			imgui.SetNextWindowPosV(imgui.NewVec2(440, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(410, 300), imgui.CondOnce)
			if !imgui.BeginV("Players", nil, 0) {
				imgui.End()
				return
			}
			imgui.Text(fmt.Sprintf("Level %d  Score %d  Lines %d  (next level in %d)",
				snap.Level, snap.TotalScore, snap.TotalLines, snap.PointsToNextLevel))

			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
			if imgui.BeginTableV("PlayerTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Player")
				imgui.TableSetupColumn("Zone")
				imgui.TableSetupColumn("Score")
				imgui.TableSetupColumn("Piece")
				imgui.TableSetupColumn("Next")
				imgui.TableSetupColumn("Drop")
				imgui.TableHeadersRow()
				for _, p := range snap.Players {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.PushStyleColorVec4(imgui.ColText, vec4(p.Color))
					imgui.Text(fmt.Sprintf("■ P%d", p.ID+1))
					imgui.PopStyleColor()
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d-%d", p.Zone.Min, p.Zone.Max))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d / %d", p.Score, p.Lines))
					imgui.TableNextColumn()
					if p.Piece != nil {
						imgui.Text(fmt.Sprintf("%s @%d,%d ghost %d", p.Piece.Kind, p.Piece.X, p.Piece.Y, p.GhostY))
					} else {
						imgui.Text("-")
					}
					imgui.TableNextColumn()
					imgui.Text(p.Next.String())
					imgui.TableNextColumn()
					imgui.Text(p.DropInterval.String())
				}
				imgui.EndTable()
			}
			imgui.End()
		},
	})
}

func spawnZonesWindow(ui *ecs.Storage, engine *game.Engine) {
	ui.Spawn(debugui.ImguiItem{
		Render: func() {
			snap := engine.Snapshot()

			imgui.SetNextWindowPosV(imgui.NewVec2(440, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(410, 300), imgui.CondOnce)
			if !imgui.BeginV("Zones & Bombs", nil, 0) {
				imgui.End()
				return
			}

			imgui.Text(fmt.Sprintf("%d cols x %d rows, %s mode", snap.Board.Cols(), snap.Board.Rows(), snap.Mode))
			if len(snap.Shared) == 0 {
				imgui.Text("No shared zones")
			} else {
				imgui.Text(fmt.Sprintf("Shift every %s, next in %s", snap.ShiftInterval, snap.ShiftCountdown.Round(100*time.Millisecond)))
			}
			for i, sz := range snap.Shared {
				imgui.BulletText(fmt.Sprintf("Shared %d: cols %d-%d (P%d | P%d)", i, sz.Start, sz.End, i+1, i+2))
			}
			if shift := snap.Shift; shift.Active {
				imgui.ProgressBarV(float32(shift.Progress), imgui.NewVec2(-1, 0),
					fmt.Sprintf("zone %d: %d -> %d", shift.Zone, shift.From, shift.To))
			}

			imgui.Separator()
			imgui.Text(fmt.Sprintf("Bomb queue: %d", len(snap.Bombs)))
			for _, bomb := range snap.Bombs {
				imgui.ProgressBarV(float32(1-bomb.Remaining), imgui.NewVec2(-1, 0),
					fmt.Sprintf("P%d, %d cells", bomb.Owner+1, len(bomb.Cells)))
			}
			imgui.Text(fmt.Sprintf("Filled cells: %d", snap.Board.FilledCount()))
			imgui.End()
		},
	})
}

func initDebugUI(ui *ecs.Storage, engine *game.Engine) {
	spawnControlWindow(ui, engine)
	spawnPlayersWindow(ui, engine)
	spawnZonesWindow(ui, engine)
}
