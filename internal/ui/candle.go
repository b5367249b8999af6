package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

var (
	candleColors = []color.NRGBA{
		{R: 0xf4, G: 0x72, B: 0xb6, A: 0xff},
		{R: 0xa8, G: 0x55, B: 0xf7, A: 0xff},
		{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff},
		{R: 0x34, G: 0xd3, B: 0x99, A: 0xff},
		{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff},
		{R: 0xf8, G: 0x71, B: 0x71, A: 0xff},
	}
	flameColor = color.NRGBA{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff}
	glowColor  = color.NRGBA{R: 0xfd, G: 0xe0, B: 0x47, A: 0x55}
	smokeColor = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// CandleWidget draws one candle slot. Tapping it only has an effect while it is lit.
type CandleWidget struct {
	widget.BaseWidget

	Index    int
	OnTapped func()

	lit bool
}

// NewCandleWidget returns a lit candle for slot index.
func NewCandleWidget(index int, onTapped func()) *CandleWidget {
	c := &CandleWidget{Index: index, OnTapped: onTapped, lit: true}
	c.ExtendBaseWidget(c)
	return c
}

// Lit reports whether the flame is shown.
func (c *CandleWidget) Lit() bool {
	return c.lit
}

// SetLit switches between flame and smoke.
func (c *CandleWidget) SetLit(lit bool) {
	if c.lit == lit {
		return
	}
	c.lit = lit
	c.Refresh()
}

// Tapped implements fyne.Tappable.
func (c *CandleWidget) Tapped(*fyne.PointEvent) {
	if c.lit && c.OnTapped != nil {
		c.OnTapped()
	}
}

// Cursor shows a pointer over lit candles.
func (c *CandleWidget) Cursor() desktop.Cursor {
	if c.lit {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// CreateRenderer implements fyne.Widget.
func (c *CandleWidget) CreateRenderer() fyne.WidgetRenderer {
	stick := canvas.NewRectangle(candleColors[c.Index%len(candleColors)])
	stick.CornerRadius = 2
	r := &candleRenderer{
		candle: c,
		stick:  stick,
		glow:   canvas.NewCircle(glowColor),
		flame:  canvas.NewCircle(flameColor),
	}
	for i := 0; i < config.CandleSmokePuffs; i++ {
		puff := smokeColor
		puff.A = uint8(float32(0xff) * (0.6 - 0.2*float32(i)))
		r.smoke = append(r.smoke, canvas.NewCircle(puff))
	}
	r.Refresh()
	return r
}

type candleRenderer struct {
	candle *CandleWidget
	stick  *canvas.Rectangle
	glow   *canvas.Circle
	flame  *canvas.Circle
	smoke  []*canvas.Circle
}

func (r *candleRenderer) Layout(size fyne.Size) {
	stickH := size.Height - config.CandleFlameHeight
	r.stick.Resize(fyne.NewSize(config.CandleStickWidth, stickH))
	r.stick.Move(fyne.NewPos((size.Width-config.CandleStickWidth)/2, config.CandleFlameHeight))

	flameX := (size.Width - config.CandleFlameWidth) / 2
	r.flame.Resize(fyne.NewSize(config.CandleFlameWidth, config.CandleFlameHeight))
	r.flame.Move(fyne.NewPos(flameX, 0))
	r.glow.Resize(fyne.NewSize(config.CandleFlameWidth*2, config.CandleFlameHeight*1.5))
	r.glow.Move(fyne.NewPos(flameX-config.CandleFlameWidth/2, -config.CandleFlameHeight/4))

	puff := float32(config.CandleStickWidth) / 2
	for i, s := range r.smoke {
		s.Resize(fyne.NewSize(puff, puff))
		s.Move(fyne.NewPos(size.Width/2-puff/2+float32(i*2), config.CandleFlameHeight-puff-float32(i*3)))
	}
}

func (r *candleRenderer) MinSize() fyne.Size {
	return fyne.NewSize(config.CandleMinWidth, config.CandleMinHeight)
}

func (r *candleRenderer) Refresh() {
	lit := r.candle.lit
	r.flame.Hidden = !lit
	r.glow.Hidden = !lit
	for _, s := range r.smoke {
		s.Hidden = lit
	}
	canvas.Refresh(r.candle)
}

func (r *candleRenderer) Objects() []fyne.CanvasObject {
	objs := []fyne.CanvasObject{r.stick, r.glow, r.flame}
	for _, s := range r.smoke {
		objs = append(objs, s)
	}
	return objs
}

func (r *candleRenderer) Destroy() {}
