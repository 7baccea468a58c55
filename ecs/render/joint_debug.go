package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/common"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
)

var (
	anchorColor = color.NRGBA{R: 0xf0, G: 0xd0, B: 0x40, A: 0xff}
	brokenColor = color.NRGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
	idleColor   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// DrawJointDebug marks every joint's world anchor and connects it to the
// body's local anchor.
func DrawJointDebug(w *ecs.World, screen *ebiten.Image, cam Camera) {
	if w == nil || screen == nil {
		return
	}
	for _, e := range w.Query(component.FixedRevoluteJointComponent.Kind()) {
		j, _ := ecs.Get(w, e, component.FixedRevoluteJointComponent)
		if j == nil {
			continue
		}
		c := anchorColor
		switch {
		case j.Broken():
			c = brokenColor
		case !j.Enabled() || !j.Attached():
			c = idleColor
		}

		ax, ay := cam.ToScreen(j.WorldAnchor())
		drawCross(screen, ax, ay, 6, c)

		body := j.BodyA()
		if body == nil || body.SimBody() == nil || j.Broken() {
			continue
		}
		local := j.LocalAnchor()
		scale := body.Scale()
		p := body.SimBody().LocalToWorld(cp.Vector{
			X: local.X * scale.X * common.LengthToPhysical,
			Y: local.Y * scale.Y * common.LengthToPhysical,
		})
		bx, by := cam.ToScreen(p.Mult(common.LengthToEngine))
		ebitenutil.DrawLine(screen, ax, ay, bx, by, c)
	}
}
