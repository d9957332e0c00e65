// Package render draws a runner snapshot into a character screen. It only
// reads the snapshot; nothing here feeds back into the simulation.
package render

import (
	"fmt"
	"math"

	"github.com/vovakirdan/funrun/internal/assets"
	"github.com/vovakirdan/funrun/internal/core"
	"github.com/vovakirdan/funrun/internal/runner"
)

// Visual characters for rendering
const (
	GroundChar      = '═'
	GroundDotChar   = '·'
	ObstacleFill    = '▓'
	PlayerFill      = '█'
	BalloonChar     = '●'
	BalloonHitChar  = '○'
	BalloonTailChar = '╵'
)

// Minimum screen size the playfield needs.
const (
	MinWidth  = 20
	MinHeight = 8
)

// hudRows is the number of rows reserved above the playfield.
const hudRows = 1

// viewport maps world pixels onto screen cells below the HUD.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(dst *core.Screen, snap runner.Snapshot) viewport {
	rows := dst.Height() - hudRows
	return viewport{
		sx:  float64(dst.Width()) / snap.World.Width,
		sy:  float64(rows) / snap.World.Height,
		top: hudRows,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// box converts a world rectangle to a cell rectangle at least one cell big.
func (v viewport) box(x, y, w, h float64) core.Rect {
	c0, r0 := v.col(x), v.row(y)
	c1, r1 := v.col(x+w), v.row(y+h)
	return core.NewRect(c0, r0, max(c1-c0, 1), max(r1-r0, 1))
}

// Draw renders the full frame: world, HUD and phase overlay.
func Draw(dst *core.Screen, snap runner.Snapshot, sprites assets.Set) {
	dst.Clear()

	if dst.Width() < MinWidth || dst.Height() < MinHeight || snap.World.Width <= 0 || snap.World.Height <= 0 {
		dst.DrawText(0, 0, "Terminal too small")
		return
	}

	vp := newViewport(dst, snap)

	drawGround(dst, vp, snap)
	for _, o := range snap.Obstacles {
		drawObstacle(dst, vp, o, sprites.Obstacle)
	}
	for _, b := range snap.Balloons {
		drawBalloon(dst, vp, b, snap.BalloonRY)
	}
	drawPlayer(dst, vp, snap.Player, sprites.Player)
	drawHUD(dst, snap)

	switch {
	case snap.Phase == runner.PhaseOver:
		drawMessage(dst,
			line{"GAME OVER", core.ColorBrightRed},
			line{snap.PlayerName, core.ColorBrightYellow},
			line{fmt.Sprintf("Score: %d", snap.Score), core.ColorWhite},
			line{"Press SPACE or CLICK to restart", core.ColorGray},
		)
	case snap.Phase == runner.PhaseIdle && !snap.GateOpen:
		drawMessage(dst,
			line{"PROMON FUNRUN", core.ColorBrightGreen},
			line{fmt.Sprintf("Welcome, %s!", snap.PlayerName), core.ColorBrightYellow},
			line{"Press SPACE or CLICK to start", core.ColorWhite},
		)
	}
}

func drawGround(dst *core.Screen, vp viewport, snap runner.Snapshot) {
	groundRow := vp.row(snap.World.GroundY())
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGreen)

	// Dots scroll with the world so the ground reads as moving.
	scroll := int(float64(snap.FrameCount) * snap.GameSpeed * vp.sx)
	for y := groundRow + 1; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x+scroll+y*2)%6 == 0 {
				dst.SetColor(x, y, GroundDotChar, core.ColorGray)
			}
		}
	}
}

func drawObstacle(dst *core.Screen, vp viewport, o runner.Obstacle, sprite assets.Sprite) {
	r := vp.box(o.X, o.Y, o.Width, o.Height)
	if !sprite.Ready {
		dst.DrawRect(r, ObstacleFill, core.ColorRed)
		return
	}
	drawSprite(dst, r, sprite, core.ColorOrange)
}

func drawPlayer(dst *core.Screen, vp viewport, p runner.Player, sprite assets.Sprite) {
	r := vp.box(p.X, p.Y, p.Width, p.Height)
	if !sprite.Ready {
		dst.DrawRect(r, PlayerFill, core.ColorYellow)
		return
	}
	drawSprite(dst, r, sprite, core.ColorBrightYellow)
}

// drawSprite stretches a sprite over r with nearest-neighbour sampling.
// Spaces in the sprite leave the background visible.
func drawSprite(dst *core.Screen, r core.Rect, s assets.Sprite, c core.Color) {
	for dy := 0; dy < r.H; dy++ {
		row := dy * s.Height() / r.H
		for dx := 0; dx < r.W; dx++ {
			ch := s.At(dx*s.Width/r.W, row)
			if ch == ' ' {
				continue
			}
			dst.SetColor(r.X+dx, r.Y+dy, ch, c)
		}
	}
}

func drawBalloon(dst *core.Screen, vp viewport, b runner.Balloon, ryScale float64) {
	hex := b.Color.Hex()
	ch := BalloonChar
	if b.Hit {
		ch = BalloonHitChar
	}

	ry := b.Radius * ryScale
	r := vp.box(b.X-b.Radius, b.Y-ry, 2*b.Radius, 2*ry)
	e := b.Ellipse(ryScale)

	drawn := false
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			// Sample at the cell centre, back in world space.
			wx := (float64(x) + 0.5) / vp.sx
			wy := (float64(y-vp.top) + 0.5) / vp.sy
			if e.NormDistSq(wx-e.CX, wy-e.CY) <= 1 {
				dst.SetCell(x, y, core.Cell{Rune: ch, RGB: hex})
				drawn = true
			}
		}
	}
	if !drawn {
		dst.SetCell(vp.col(b.X), vp.row(b.Y), core.Cell{Rune: ch, RGB: hex})
	}
	dst.SetColor(vp.col(b.X), r.Bottom(), BalloonTailChar, core.ColorGray)
}

func drawHUD(dst *core.Screen, snap runner.Snapshot) {
	score := fmt.Sprintf(" Score: %d | High Score: %d ", snap.Score, snap.HighScore)
	dst.DrawTextColor(1, 0, score, core.ColorBrightYellow)

	if !snap.GateOpen {
		who := fmt.Sprintf(" Playing as: %s ", snap.PlayerName)
		x := dst.Width() - len([]rune(who)) - 1
		if x > len([]rune(score))+1 {
			dst.DrawTextColor(x, 0, who, core.ColorCyan)
		}
	}
}

type line struct {
	text  string
	color core.Color
}

// drawMessage draws a bordered box in the center of the screen.
func drawMessage(dst *core.Screen, lines ...line) {
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l.text)))
	}
	boxW = min(boxW+4, dst.Width())
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l.text)))/2
		dst.DrawTextColor(x, boxY+1+i, l.text, l.color)
	}
}
