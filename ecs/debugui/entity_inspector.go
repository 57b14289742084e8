package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/zonefall/ecs"
)

var dimmed = imgui.NewVec4(0.6, 0.6, 0.6, 1.0)

func (ei *EntityInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	storage := ei.target.Storage()

	imgui.SetNextItemWidth(-1)
	imgui.InputTextWithHint("##filter", "Component filter...", &ei.filter, imgui.InputTextFlagsNone, nil)
	filter := strings.ToLower(ei.filter)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 2, tableFlags, imgui.NewVec2(0, 180), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()
		for _, arch := range storage.Archetypes() {
			label := typeNames(arch)
			if filter != "" && !strings.Contains(strings.ToLower(label), filter) {
				continue
			}
			for id := range arch.Iter() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				if imgui.SelectableBoolV(fmt.Sprintf("%d##%d", id.Index(), id), id == ei.selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
					ei.selected = id
				}
				imgui.TableNextColumn()
				imgui.Text(label)
			}
		}
		imgui.EndTable()
	}

	imgui.Separator()
	ei.renderSelected(storage)
	imgui.End()
}

func (ei *EntityInspector) renderSelected(storage *ecs.Storage) {
	if ei.selected == 0 {
		imgui.TextColored(dimmed, "No entity selected")
		return
	}
	var arch *ecs.Archetype
	for _, a := range storage.Archetypes() {
		if a.ID() == ei.selected.ArchetypeId() {
			arch = a
			break
		}
	}
	if arch == nil || !storage.HasComponent(ei.selected, arch.Types()[0]) {
		imgui.TextColored(dimmed, fmt.Sprintf("Entity %d is gone", ei.selected.Index()))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d  archetype 0x%08X", ei.selected.Index(), arch.ID()))
	for _, t := range arch.Types() {
		if imgui.TreeNodeStr(t.Name()) {
			imgui.Text(fmt.Sprintf("%+v", storage.GetComponent(ei.selected, t)))
			imgui.TreePop()
		}
	}
}

func typeNames(arch *ecs.Archetype) string {
	names := make([]string, len(arch.Types()))
	for i, t := range arch.Types() {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}
