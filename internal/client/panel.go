package client

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/drop/ecs/debugui"
	"github.com/plus3/drop/internal/drop"
	"github.com/plus3/drop/internal/settings"
)

// statePanel shows the session snapshot and the audio levels.
type statePanel struct {
	world    *drop.World
	settings *settings.Manager
	changed  func()
}

func (p *statePanel) Item() debugui.ImguiItem {
	return debugui.ImguiItem{Render: p.Render}
}

func (p *statePanel) Render() {
	if !imgui.BeginV("Drop", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	snap := p.world.Snapshot()
	imgui.Text(fmt.Sprintf("Frame: %d", snap.Frame))
	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Bucket: x=%.1f vx=%.1f", snap.BucketX, snap.BucketVX))
	for i, level := range snap.Pools {
		imgui.ProgressBarV(float32(level)/float32(p.world.Rules().PoolMax), imgui.NewVec2(160, 0), fmt.Sprintf("pool %d: %d", i, level))
	}
	for _, kind := range []drop.Kind{drop.Raindrop, drop.Stone, drop.Sponge} {
		imgui.BulletText(fmt.Sprintf("%s: %d falling", kind, snap.Falling[kind]))
	}

	if p.settings != nil {
		imgui.Separator()
		current := p.settings.Get()
		music := float32(current.MusicVolume)
		if imgui.SliderFloat("Music", &music, 0, 1) {
			p.settings.SetMusicVolume(float64(music))
			p.notify()
		}
		sound := float32(current.SoundVolume)
		if imgui.SliderFloat("Sound", &sound, 0, 1) {
			p.settings.SetSoundVolume(float64(sound))
			p.notify()
		}
	}

	imgui.End()
}

func (p *statePanel) notify() {
	if p.changed != nil {
		p.changed()
	}
}
