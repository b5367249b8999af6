package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/tartampluch/go-birthday-card/internal/engine"
)

var (
	titleColor = color.NRGBA{R: 0xdb, G: 0x27, B: 0x77, A: 0xff}
	nameColor  = color.NRGBA{R: 0x93, G: 0x33, B: 0xea, A: 0xff}
	cakeColors = []color.NRGBA{
		{R: 0xf9, G: 0xa8, B: 0xd4, A: 0xff},
		{R: 0xfb, G: 0xcf, B: 0xe8, A: 0xff},
		{R: 0xfc, G: 0xe7, B: 0xf3, A: 0xff},
	}
)

// cardView holds the widgets of one open card window.
type cardView struct {
	app *CardApp

	title     *canvas.Text
	recipient *canvas.Text
	clock     *widget.Label

	makeWish *widget.Label
	hint     *widget.Label
	candles  []*CandleWidget
	progress *widget.ProgressBar
	status   *widget.Label
	relight  *widget.Button

	wishesTitle *widget.Label
	wishEntry   *FilteredEntry
	addWish     *widget.Button
	wishList    *widget.List
	wishes      []string

	letter     *widget.Card
	letterBody *widget.Label
	closing    *widget.Label
	sender     *widget.Label
	footer     *widget.Label

	confetti  *ConfettiLayer
	ornaments *OrnamentLayer

	clockTimer engine.Timer
	content    fyne.CanvasObject
}

func newCardView(app *CardApp) *cardView {
	v := &cardView{app: app}

	v.title = canvas.NewText("", titleColor)
	v.title.TextSize = config.TitleTextSize
	v.title.TextStyle = fyne.TextStyle{Bold: true}
	v.title.Alignment = fyne.TextAlignCenter

	v.recipient = canvas.NewText("", nameColor)
	v.recipient.TextSize = config.NameTextSize
	v.recipient.TextStyle = fyne.TextStyle{Bold: true}
	v.recipient.Alignment = fyne.TextAlignCenter

	v.clock = widget.NewLabel("")
	v.clock.Alignment = fyne.TextAlignCenter

	header := container.NewVBox(v.title, v.recipient, v.clock)

	// Cake
	v.makeWish = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.hint = widget.NewLabel("")
	v.hint.Alignment = fyne.TextAlignCenter

	candleRow := container.NewHBox(layout.NewSpacer())
	for i := 0; i < config.TotalCandles; i++ {
		c := NewCandleWidget(i, app.blowCandle)
		v.candles = append(v.candles, c)
		candleRow.Add(c)
	}
	candleRow.Add(layout.NewSpacer())

	v.progress = widget.NewProgressBar()
	v.progress.TextFormatter = func() string { return "" }
	v.status = widget.NewLabel("")
	v.status.Alignment = fyne.TextAlignCenter
	v.relight = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), app.relightCandles)
	v.relight.Importance = widget.HighImportance

	cake := container.NewVBox(
		v.makeWish,
		v.hint,
		candleRow,
		cakeLayer(config.CakeTopWidth, cakeColors[2]),
		cakeLayer(config.CakeMiddleWidth, cakeColors[1]),
		cakeLayer(config.CakeBottomWidth, cakeColors[0]),
		v.progress,
		v.status,
		container.NewCenter(v.relight),
	)

	// Wishes
	v.wishesTitle = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.wishEntry = NewWishEntry()
	v.wishEntry.OnSubmitted = func(string) { v.submitWish() }
	v.addWish = widget.NewButtonWithIcon("", theme.ContentAddIcon(), v.submitWish)
	v.addWish.Importance = widget.HighImportance

	v.wishes = app.Wishes.All()
	v.wishList = widget.NewList(
		func() int { return len(v.wishes) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Wrapping = fyne.TextWrapWord
			return l
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(config.WishBullet + v.wishes[id])
		},
	)
	listHeight := canvas.NewRectangle(color.Transparent)
	listHeight.SetMinSize(fyne.NewSize(0, config.WishListHeight))

	wishBox := container.NewVBox(
		v.wishesTitle,
		container.NewBorder(nil, nil, nil, v.addWish, v.wishEntry),
		container.NewStack(listHeight, v.wishList),
	)

	// Letter
	v.letterBody = widget.NewLabel("")
	v.letterBody.Wrapping = fyne.TextWrapWord
	v.closing = widget.NewLabel("")
	v.sender = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.letter = widget.NewCard("", "", container.NewVBox(v.letterBody, v.closing, v.sender))

	v.footer = widget.NewLabel("")
	v.footer.Alignment = fyne.TextAlignCenter
	v.footer.TextStyle = fyne.TextStyle{Italic: true}

	column := container.NewVBox(
		header,
		widget.NewCard("", "", cake),
		widget.NewCard("", "", wishBox),
		v.letter,
		v.footer,
	)

	v.ornaments = NewOrnamentLayer(app.ornaments, app.Scheduler)
	v.confetti = NewConfettiLayer(app.Animator)
	v.content = container.NewStack(v.ornaments, container.NewVScroll(container.NewPadded(column)), v.confetti)

	v.applyTexts()
	return v
}

func cakeLayer(width float32, fill color.Color) fyne.CanvasObject {
	r := canvas.NewRectangle(fill)
	r.CornerRadius = theme.InputRadiusSize()
	r.SetMinSize(fyne.NewSize(width, config.CakeLayerHeight))
	return container.NewCenter(r)
}

// start launches the clock and the ornaments.
func (v *cardView) start() {
	v.tickClock()
	v.clockTimer = v.app.Scheduler.Every(config.ClockRefreshInterval, func() {
		fyne.Do(v.tickClock)
	})
	v.ornaments.Start()
}

// stop releases every timer owned by the view.
func (v *cardView) stop() {
	if v.clockTimer != nil {
		v.clockTimer.Stop()
		v.clockTimer = nil
	}
	v.ornaments.Stop()
}

func (v *cardView) tickClock() {
	format := v.app.GetMsg(config.TKeyFormatDateTime)
	if format == config.TKeyFormatDateTime {
		format = config.DateTimeFormat
	}
	v.clock.SetText(v.app.Clock.Now().Format(format))
}

// applyCandles mirrors the tracker state. Must run on the UI goroutine.
func (v *cardView) applyCandles(s engine.CandleState) {
	for i, c := range v.candles {
		c.SetLit(s.Lit(i))
	}
	v.progress.SetValue(s.Progress())

	if s.Complete() {
		v.status.SetText(v.app.msgOr(config.TKeyCandleDone, nil, config.FallbackDone))
		v.relight.Show()
		return
	}
	v.status.SetText(v.app.msgOr(config.TKeyCandleProgress,
		map[string]interface{}{"Blown": s.Blown, "Total": config.TotalCandles},
		config.FallbackProgress, s.Blown, config.TotalCandles))
	v.relight.Hide()
}

// applyTexts relabels everything that depends on the language or the recipient.
func (v *cardView) applyTexts() {
	rec := v.app.Recipient()
	name := map[string]interface{}{"Name": rec.Name}

	v.title.Text = v.app.msgOr(config.TKeyTitle, nil, config.FallbackTitle)
	v.title.Refresh()
	v.recipient.Text = v.app.msgOr(config.TKeyRecipientLine, name, config.FallbackRecipientLine, rec.Name)
	v.recipient.Refresh()

	v.makeWish.SetText(v.app.GetMsg(config.TKeyMakeWish))
	v.hint.SetText(v.app.GetMsg(config.TKeyCandleHint))
	v.relight.SetText(v.app.GetMsg(config.TKeyBtnRelight))

	v.wishesTitle.SetText(v.app.GetMsgData(config.TKeyWishesTitle, name))
	v.wishEntry.SetPlaceHolder(v.app.msgOr(config.TKeyWishPlaceholder, name, config.FallbackWishPrompt, rec.Name))
	v.addWish.SetText(v.app.GetMsg(config.TKeyBtnAddWish))

	v.letter.SetTitle(v.app.GetMsgData(config.TKeyLetterTitle, name))
	v.letterBody.SetText(v.app.GetMsgData(config.TKeyLetterBody, name))
	v.closing.SetText(v.app.GetMsg(config.TKeyLetterClosing))
	v.sender.SetText(rec.Sender)
	v.footer.SetText(v.app.GetMsg(config.TKeyFooter))

	v.applyCandles(v.app.Tracker.State())
	v.tickClock()
}

// submitWish adds the entry text and clears the entry only when a wish was added.
func (v *cardView) submitWish() {
	if _, ok := v.app.Wishes.Add(v.wishEntry.Text); !ok {
		return
	}
	v.app.Metrics.WishAdded()
	v.wishEntry.SetText("")
	v.wishes = v.app.Wishes.All()
	v.wishList.Refresh()
	v.wishList.ScrollToBottom()
}

func (v *cardView) setParticles(frame []engine.Particle) {
	v.confetti.SetParticles(frame)
}
