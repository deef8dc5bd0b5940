package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/loop"
)

// SessionWindow shows round progress and exposes the mutation entry points
// the shop uses, without charging money. Upgrades and jokers go through the
// frame's command buffer.
type SessionWindow struct{}

func NewSessionWindow() *SessionWindow {
	return &SessionWindow{}
}

func (sw *SessionWindow) Render(frame *loop.UpdateFrame) {
	imgui.SetNextWindowPosV(imgui.NewVec2(350, 280), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 380), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := frame.Session
	r := s.Round()
	imgui.Text(fmt.Sprintf("ID: %s", s.ID()))
	imgui.Text(fmt.Sprintf("Mode: %s", s.Mode()))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Round %d  target %d", r.RoundNumber, r.RoundTarget))
	progress := float32(0)
	if r.RoundTarget > 0 {
		progress = min(1, float32(r.Score)/float32(r.RoundTarget))
	}
	imgui.ProgressBarV(progress, imgui.NewVec2(-1, 0), fmt.Sprintf("%d", r.Score))
	imgui.Text(fmt.Sprintf("Lines: %d  Level: %d", r.LinesCleared, r.Level))
	imgui.Text(fmt.Sprintf("Fall interval: %s", r.FallInterval))
	imgui.Text(fmt.Sprintf("Money: $%d", r.Money))

	switch s.Mode() {
	case engine.ModeMenu:
		if imgui.Button("Start") {
			s.Start()
		}
	case engine.ModeShop:
		if imgui.Button("Next round") {
			s.StartNextRound()
		}
	case engine.ModePackOpening:
		if imgui.Button("Collect pack") {
			s.CollectPack()
		}
	case engine.ModeGameOver:
		if imgui.Button("Reset") {
			s.Reset()
		}
	}

	if imgui.TreeNodeStr("Upgrades") {
		u := s.Upgrades()
		imgui.Text(fmt.Sprintf("Multiplier: x%.1f", u.ScoreMultiplier))
		imgui.SameLine()
		if imgui.Button("+0.5") {
			frame.Commands.ApplyUpgrade(engine.UpgradeScoreMultiplier, 0.5)
		}
		imgui.Text(fmt.Sprintf("Extra line bonus: %d", u.ExtraLineBonus))
		imgui.SameLine()
		if imgui.Button("+1") {
			frame.Commands.ApplyUpgrade(engine.UpgradeExtraLines, 1)
		}
		if imgui.Checkbox("Hold", &u.HoldEnabled) {
			frame.Commands.ApplyUpgrade(engine.UpgradeHold, u.HoldEnabled)
		}
		if imgui.Checkbox("Ghost", &u.GhostEnabled) {
			frame.Commands.ApplyUpgrade(engine.UpgradeGhost, u.GhostEnabled)
		}
		if imgui.Checkbox("Bomb", &u.BombEnabled) {
			frame.Commands.ApplyUpgrade(engine.UpgradeBomb, u.BombEnabled)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Jokers") {
		jokers := s.ActiveJokers()
		if len(jokers) == 0 {
			imgui.Text("none")
		}
		for i, j := range jokers {
			imgui.BulletText(fmt.Sprintf("%d. %s", i+1, j))
		}
		imgui.Separator()
		for _, j := range engine.Jokers() {
			if imgui.Button("Add " + strings.ToLower(string(j))) {
				frame.Commands.AddJoker(string(j))
			}
		}
		imgui.TreePop()
	}

	imgui.End()
}
