package canvas

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/jumpdemo/render"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const hudMargin = 10

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// DrawHUD prints s in the top left corner of dst.
func DrawHUD(dst *ebiten.Image, s render.Stats) {
	if dst == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(hudMargin, hudMargin)
	op.ColorScale.ScaleWithColor(colornames.White)
	op.LineSpacing = float64(basicfont.Face7x13.Height) + 2
	text.Draw(dst, strings.Join(s.Lines(), "\n"), hudFace, op)
}
