package cartpole

import (
	"errors"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	ViewportW float64 = 600
	ViewportH float64 = 400

	cartWidth  float64 = 50
	cartHeight float64 = 30
	poleWidth  float64 = 10
	trackY     float64 = 100 // distance of the track from the bottom
)

var errNoState = errors.New("render: environment has no state")

var (
	background = color.RGBA{255, 255, 255, 255}
	cartColour = color.RGBA{0, 0, 0, 255}
	poleColour = color.RGBA{204, 153, 102, 255}
	axleColour = color.RGBA{127, 127, 204, 255}
)

// Render draws the current state of the environment, with the cart
// positioned on its track and the pole drawn at its current angle.
func (c *base) Render() (image.Image, error) {
	state := c.lastStep.Observation
	if state == nil {
		return nil, errNoState
	}
	x, th := state.AtVec(0), state.AtVec(2)

	worldWidth := 2 * FailPosition
	scale := ViewportW / worldWidth
	poleLen := scale * 2 * c.halfPoleLength

	dc := gg.NewContext(int(ViewportW), int(ViewportH))
	dc.SetColor(background)
	dc.Clear()

	// Track
	cartY := ViewportH - trackY
	dc.SetColor(cartColour)
	dc.SetLineWidth(1)
	dc.DrawLine(0, cartY, ViewportW, cartY)
	dc.Stroke()

	// Cart
	cartX := x*scale + ViewportW/2
	dc.DrawRectangle(cartX-cartWidth/2, cartY-cartHeight/2, cartWidth,
		cartHeight)
	dc.Fill()

	// Pole, rotated about the axle. The angle is measured from the
	// vertical, clockwise positive.
	axleY := cartY - cartHeight/4
	dc.Push()
	dc.RotateAbout(th, cartX, axleY)
	dc.SetColor(poleColour)
	dc.DrawRectangle(cartX-poleWidth/2, axleY-poleLen, poleWidth, poleLen)
	dc.Fill()
	dc.Pop()

	dc.SetColor(axleColour)
	dc.DrawCircle(cartX, axleY, poleWidth/2)
	dc.Fill()

	return dc.Image(), nil
}
