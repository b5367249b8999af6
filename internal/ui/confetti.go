package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-card/internal/engine"
)

// ViewportSink receives the measured drawing area of the confetti overlay.
type ViewportSink interface {
	SetViewport(width, height float64)
}

// ConfettiLayer is a transparent overlay drawing confetti particles as circles.
// It is not tappable, so input reaches the widgets underneath.
type ConfettiLayer struct {
	widget.BaseWidget

	sink ViewportSink

	mu        sync.Mutex
	particles []engine.Particle
}

// NewConfettiLayer creates an empty overlay that reports its size to sink.
func NewConfettiLayer(sink ViewportSink) *ConfettiLayer {
	l := &ConfettiLayer{sink: sink}
	l.ExtendBaseWidget(l)
	return l
}

// Resize forwards the new size to the animator before laying out.
func (l *ConfettiLayer) Resize(size fyne.Size) {
	l.BaseWidget.Resize(size)
	if l.sink != nil {
		l.sink.SetViewport(float64(size.Width), float64(size.Height))
	}
}

// SetParticles replaces the drawn frame. Must run on the UI goroutine.
func (l *ConfettiLayer) SetParticles(frame []engine.Particle) {
	l.mu.Lock()
	l.particles = frame
	l.mu.Unlock()
	l.Refresh()
}

// Count returns the number of particles currently drawn.
func (l *ConfettiLayer) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.particles)
}

// CreateRenderer implements fyne.Widget.
func (l *ConfettiLayer) CreateRenderer() fyne.WidgetRenderer {
	return &confettiRenderer{layer: l}
}

type confettiRenderer struct {
	layer   *ConfettiLayer
	circles []*canvas.Circle
	objects []fyne.CanvasObject
}

func (r *confettiRenderer) Layout(fyne.Size) {}

func (r *confettiRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

// Refresh reuses the circle pool; particles are positioned by their top-left corner.
func (r *confettiRenderer) Refresh() {
	r.layer.mu.Lock()
	frame := r.layer.particles
	r.layer.mu.Unlock()

	for len(r.circles) < len(frame) {
		c := canvas.NewCircle(nil)
		r.circles = append(r.circles, c)
		r.objects = append(r.objects, c)
	}

	for i, c := range r.circles {
		if i >= len(frame) {
			c.Hide()
			continue
		}
		p := frame[i]
		c.FillColor = p.Color
		c.Resize(fyne.NewSize(float32(p.Size), float32(p.Size)))
		c.Move(fyne.NewPos(float32(p.X), float32(p.Y)))
		c.Show()
	}
	canvas.Refresh(r.layer)
}

func (r *confettiRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *confettiRenderer) Destroy() {}
