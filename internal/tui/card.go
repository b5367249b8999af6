// Package tui renders the birthday card in a terminal with tcell.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/tartampluch/go-birthday-card/internal/audio"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/tartampluch/go-birthday-card/internal/engine"
	"github.com/tartampluch/go-birthday-card/internal/metrics"
)

// Deps are the collaborators of a terminal card. Nil fields get real defaults.
type Deps struct {
	Recipient string
	Sender    string
	Scheduler engine.Scheduler
	Clock     engine.Clock
	Rand      engine.RandSource
	Metrics   *metrics.Collector
	Player    *audio.Player
}

// Card is the terminal rendition of the birthday card. HandleEvent and Draw
// must be called from a single goroutine; Run does that for a real terminal.
type Card struct {
	screen    tcell.Screen
	sched     engine.Scheduler
	clock     engine.Clock
	metrics   *metrics.Collector
	player    *audio.Player
	recipient string
	sender    string

	Tracker   *engine.CandleTracker
	Animator  *engine.Animator
	Wishes    *engine.WishList
	ornaments []engine.Ornament

	mu        sync.Mutex
	particles []engine.Particle

	typing     bool
	draft      []rune
	redraw     chan struct{}
	clockTimer engine.Timer
}

// NewCard wires the shared card engine to an initialized screen.
func NewCard(screen tcell.Screen, deps Deps) *Card {
	if deps.Recipient == "" {
		deps.Recipient = config.DefaultRecipient
	}
	if deps.Sender == "" {
		deps.Sender = config.DefaultSender
	}
	if deps.Scheduler == nil {
		deps.Scheduler = engine.RealScheduler{}
	}
	if deps.Clock == nil {
		deps.Clock = engine.RealClock{}
	}
	if deps.Rand == nil {
		deps.Rand = engine.SystemRand{}
	}
	if deps.Player == nil {
		deps.Player = audio.NewPlayer()
	}

	c := &Card{
		screen:    screen,
		sched:     deps.Scheduler,
		clock:     deps.Clock,
		metrics:   deps.Metrics,
		player:    deps.Player,
		recipient: deps.Recipient,
		sender:    deps.Sender,
		Tracker:   engine.NewCandleTracker(),
		Animator:  engine.NewAnimator(deps.Scheduler, deps.Rand),
		Wishes:    engine.NewWishList(deps.Recipient, config.DefaultWishes...),
		ornaments: engine.GenerateOrnaments(deps.Rand),
		redraw:    make(chan struct{}, config.ChannelBufferSize),
	}

	c.Tracker.OnCelebrate = c.celebrate
	c.Animator.OnFrame = func(frame []engine.Particle) {
		c.metrics.SetParticles(len(frame))
		c.mu.Lock()
		c.particles = frame
		c.mu.Unlock()
		c.invalidate()
	}

	c.resize()
	return c
}

// Run draws the card and processes terminal events until the user quits or ctx is done.
func (c *Card) Run(ctx context.Context) error {
	slog.Info(config.MsgTerminalStart, config.LogKeyComponent, config.CompTUI)
	defer slog.Info(config.MsgTerminalStop, config.LogKeyComponent, config.CompTUI)

	c.Start()
	defer c.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, config.TerminalEventBuffer)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	c.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !c.HandleEvent(ev) {
				return nil
			}
			c.Draw()
		case <-c.redraw:
			c.Draw()
		}
	}
}

// Start begins the clock refresh.
func (c *Card) Start() {
	if c.clockTimer == nil {
		c.clockTimer = c.sched.Every(config.ClockRefreshInterval, c.invalidate)
	}
}

// Stop releases the clock and confetti timers. It is safe to call twice.
func (c *Card) Stop() {
	c.Animator.Stop()
	if c.clockTimer != nil {
		c.clockTimer.Stop()
		c.clockTimer = nil
	}
}

// Typing reports whether keystrokes currently go to the wish draft.
func (c *Card) Typing() bool {
	return c.typing
}

// HandleEvent applies one terminal event. It returns false when the card should close.
func (c *Card) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.resize()
		c.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if c.typing {
			c.handleWishKey(ev)
			return true
		}
		return c.handleKey(ev)
	}
	return true
}

func (c *Card) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch r := ev.Rune(); {
	case r == 'q':
		return false
	case r == ' ':
		c.blow()
	case r >= '1' && r < '1'+config.TotalCandles:
		// Only a lit candle responds, like a click on the card.
		if c.Tracker.State().Lit(int(r - '1')) {
			c.blow()
		}
	case r == 'r':
		if c.Tracker.State().Complete() {
			c.Tracker.Reset()
		}
	case r == 'w':
		c.typing = true
	}
	return true
}

func (c *Card) handleWishKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.typing = false
		c.draft = nil
	case tcell.KeyEnter:
		if _, ok := c.Wishes.Add(string(c.draft)); ok {
			c.metrics.WishAdded()
			c.typing = false
			c.draft = nil
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(c.draft); n > 0 {
			c.draft = c.draft[:n-1]
		}
	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			c.draft = append(c.draft, r)
		}
	}
}

func (c *Card) blow() {
	if c.Tracker.Blow() {
		c.metrics.CandleBlown()
		c.player.Puff()
	}
}

func (c *Card) celebrate() {
	c.metrics.Celebration()
	c.player.Fanfare()
	c.Animator.Start()
}

// resize maps the terminal grid to a pixel viewport so confetti falls at the same pace as in the window.
func (c *Card) resize() {
	w, h := c.screen.Size()
	c.Animator.SetViewport(float64(w*config.CellPixelWidth), float64(h*config.CellPixelHeight))
}

func (c *Card) invalidate() {
	select {
	case c.redraw <- struct{}{}:
	default:
	}
}

// Draw renders the whole card.
func (c *Card) Draw() {
	s := c.screen
	s.Clear()
	w, h := s.Size()

	for _, o := range c.ornaments {
		x, y := int(o.X*float64(w)/100), int(o.Y*float64(h)/100)
		if o.Kind == engine.OrnamentHeart {
			s.SetContent(x, y, config.TUIHeart, nil, heartStyle)
		}
	}

	state := c.Tracker.State()
	row := 1
	c.center(row, fmt.Sprintf("%s, %s!", config.FallbackTitle, c.recipient), titleStyle)
	row++
	c.center(row, c.clock.Now().Format(config.DateTimeFormat), dimStyle)
	row += 2

	// Candles sit two columns apart on top of the cake.
	cakeX := (w - config.TotalCandles*2 + 1) / 2
	for i := 0; i < config.TotalCandles; i++ {
		flame, style := config.TUIFlameOut, smokeStyle
		if state.Lit(i) {
			flame, style = config.TUIFlameLit, flameStyle
		}
		s.SetContent(cakeX+i*2, row, flame, nil, style)
		s.SetContent(cakeX+i*2, row+1, config.TUIStick, nil, stickStyle)
	}
	row += 2
	for layer, width := range []int{config.TotalCandles*2 + 3, config.TotalCandles*2 + 7} {
		start := (w - width) / 2
		for x := start; x < start+width; x++ {
			s.SetContent(x, row+layer, config.TUICake, nil, cakeStyle)
		}
	}
	row += 3

	c.center(row, progressBar(state), textStyle)
	row++
	status := fmt.Sprintf(config.FallbackProgress, state.Blown, config.TotalCandles)
	if state.Complete() {
		status = config.FallbackDone
	}
	c.center(row, status, titleStyle)
	row += 2

	wishes := c.Wishes.All()
	if len(wishes) > config.TUIWishLimit {
		wishes = wishes[len(wishes)-config.TUIWishLimit:]
	}
	for _, wish := range wishes {
		c.text(2, row, config.WishBullet+wish, textStyle)
		row++
	}
	row++
	c.text(2, row, "- "+c.sender, dimStyle)

	help := config.TUIHelp
	if c.typing {
		c.text(0, h-2, config.TUIPrompt+string(c.draft), textStyle)
		s.ShowCursor(len(config.TUIPrompt)+len(c.draft), h-2)
		help = config.TUIWishHelp
	} else {
		s.HideCursor()
	}
	c.text(0, h-1, help, dimStyle)

	c.mu.Lock()
	for _, p := range c.particles {
		x, y := int(p.X)/config.CellPixelWidth, int(p.Y)/config.CellPixelHeight
		if p.Y < 0 || x < 0 || x >= w || y >= h {
			continue
		}
		col := tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B))
		s.SetContent(x, y, config.TUIConfetti, nil, tcell.StyleDefault.Foreground(col))
	}
	c.mu.Unlock()

	s.Show()
}

func (c *Card) text(x, y int, str string, style tcell.Style) {
	for _, r := range str {
		c.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (c *Card) center(y int, str string, style tcell.Style) {
	w, _ := c.screen.Size()
	c.text((w-len([]rune(str)))/2, y, str, style)
}

func progressBar(state engine.CandleState) string {
	return "[" + strings.Repeat(string(config.TUIBarFull), state.Blown) +
		strings.Repeat(string(config.TUIBarEmpty), state.Remaining()) + "]"
}

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xEC, 0x48, 0x99)).Bold(true)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	heartStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x83, 0x18, 0x43))
	flameStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	smokeStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stickStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xA7, 0x8B, 0xFA))
	cakeStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xF9, 0xA8, 0xD4))
)
