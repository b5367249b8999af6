package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/tartampluch/go-birthday-card/internal/engine"
)

const (
	heartGlyph   = "♥"
	sparkleGlyph = "✦"
)

var (
	heartColor   = color.NRGBA{R: 0xf4, G: 0x72, B: 0xb6, A: config.HeartAlpha}
	sparkleColor = color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: config.SparkleAlpha}
)

// OrnamentLayer draws the floating hearts and twinkling sparkles behind the card.
type OrnamentLayer struct {
	widget.BaseWidget

	ornaments []engine.Ornament
	sched     engine.Scheduler

	mu         sync.Mutex
	texts      []*canvas.Text
	offsets    []float32
	animations []*fyne.Animation
	timers     []engine.Timer
	running    bool
}

// NewOrnamentLayer creates a static layer. Call Start to animate it.
func NewOrnamentLayer(ornaments []engine.Ornament, sched engine.Scheduler) *OrnamentLayer {
	l := &OrnamentLayer{ornaments: ornaments, sched: sched}
	l.ExtendBaseWidget(l)

	for _, o := range ornaments {
		glyph, col := heartGlyph, heartColor
		if o.Kind == engine.OrnamentSparkle {
			glyph, col = sparkleGlyph, sparkleColor
		}
		t := canvas.NewText(glyph, col)
		t.TextSize = float32(o.Size) * 2
		l.texts = append(l.texts, t)
		l.offsets = append(l.offsets, 0)
	}
	return l
}

// Start schedules every ornament animation after its own delay.
func (l *OrnamentLayer) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true

	for i, o := range l.ornaments {
		anim := l.animation(i, o)
		l.animations = append(l.animations, anim)
		l.timers = append(l.timers, l.sched.After(o.Delay, func() {
			fyne.Do(anim.Start)
		}))
	}
}

// Stop cancels pending delays and stops every animation.
func (l *OrnamentLayer) Stop() {
	l.mu.Lock()
	timers, animations := l.timers, l.animations
	l.timers, l.animations = nil, nil
	l.running = false
	l.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
	for _, a := range animations {
		a.Stop()
	}
}

func (l *OrnamentLayer) animation(i int, o engine.Ornament) *fyne.Animation {
	text := l.texts[i]
	var anim *fyne.Animation
	if o.Kind == engine.OrnamentHeart {
		anim = fyne.NewAnimation(o.Period/2, func(f float32) {
			l.mu.Lock()
			l.offsets[i] = -f * config.OrnamentFloatDistance
			l.mu.Unlock()
			l.placeOne(i, l.Size())
		})
	} else {
		anim = fyne.NewAnimation(o.Period/2, func(f float32) {
			c := sparkleColor
			c.A = uint8(float32(config.SparkleAlpha) * (0.3 + 0.7*f))
			text.Color = c
			text.Refresh()
		})
	}
	anim.AutoReverse = true
	anim.RepeatCount = fyne.AnimationRepeatForever
	anim.Curve = fyne.AnimationEaseInOut
	return anim
}

func (l *OrnamentLayer) placeOne(i int, size fyne.Size) {
	o := l.ornaments[i]
	l.mu.Lock()
	offset := l.offsets[i]
	l.mu.Unlock()
	l.texts[i].Move(fyne.NewPos(
		size.Width*float32(o.X)/100,
		size.Height*float32(o.Y)/100+offset,
	))
}

// CreateRenderer implements fyne.Widget.
func (l *OrnamentLayer) CreateRenderer() fyne.WidgetRenderer {
	objects := make([]fyne.CanvasObject, len(l.texts))
	for i, t := range l.texts {
		objects[i] = t
	}
	return &ornamentRenderer{layer: l, objects: objects}
}

type ornamentRenderer struct {
	layer   *OrnamentLayer
	objects []fyne.CanvasObject
}

func (r *ornamentRenderer) Layout(size fyne.Size) {
	for i, t := range r.layer.texts {
		t.Resize(t.MinSize())
		r.layer.placeOne(i, size)
	}
}

func (r *ornamentRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *ornamentRenderer) Refresh() {
	canvas.Refresh(r.layer)
}

func (r *ornamentRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *ornamentRenderer) Destroy() {
	r.layer.Stop()
}
