package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/jointlab/ecs/render"
	"github.com/milk9111/jointlab/lab"
	"github.com/milk9111/jointlab/prefabs"
)

const (
	baseWidth  = 960
	baseHeight = 540
)

var defaultBackground = color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}

type Game struct {
	lab     *lab.Lab
	watcher *prefabs.Watcher
	debug   bool
	paused  bool
}

func NewGame(l *lab.Lab, watcher *prefabs.Watcher, debug bool) *Game {
	return &Game{lab: l, watcher: watcher, debug: debug}
}

func (g *Game) Update() error {
	g.applyChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.lab.Reset(); err != nil {
			logger.Error("rebuild failed", "err", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}

	if !g.paused {
		g.lab.Step()
	}
	return nil
}

// applyChanges drains pending file changes without blocking the frame.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.lab.Reload(change); err != nil {
				logger.Error("reload failed", "path", change.Path, "err", err)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			logger.Error("watch error", "err", err)
		default:
			return
		}
	}
}

func (g *Game) camera() render.Camera {
	cam := render.Camera{X: baseWidth / 2, Y: baseHeight / 2, Zoom: g.lab.Config().Zoom, Width: baseWidth, Height: baseHeight}
	if c := g.lab.Scene().Camera; c != nil {
		cam.X, cam.Y = c.X, c.Y
	}
	return cam
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.lab.Scene().Background.Or(defaultBackground))

	cam := g.camera()
	if g.debug {
		render.DrawPhysicsDebug(g.lab.PhysicsWorld().Space(), screen, cam)
	} else {
		render.DrawShapes(g.lab.PhysicsWorld().Space(), screen, cam)
	}
	render.DrawJointDebug(g.lab.World(), screen, cam)

	status := fmt.Sprintf("Frame: %d    FPS: %.2f", g.lab.Frame(), ebiten.ActualFPS())
	if g.paused {
		status += "    PAUSED"
	}
	ebitenutil.DebugPrint(screen, status+"\n"+g.lab.Report())
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
