package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	euiimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

var (
	menuBackground = color.NRGBA{8, 12, 16, 255}
	buttonIdle     = color.NRGBA{30, 40, 70, 255}
	buttonHover    = color.NRGBA{50, 70, 120, 255}
	buttonPressed  = color.NRGBA{20, 30, 50, 255}
	buttonText     = color.NRGBA{230, 240, 255, 255}
)

type menuButton struct {
	label   string
	onClick func()
}

// newMenuUI builds a centred column with a title, an optional subtitle and
// one button per entry.
func newMenuUI(fonts *Fonts, title string, titleColor color.Color, subtitle string, buttons []menuButton) *ebitenui.UI {
	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(euiimage.NewNineSliceColor(color.NRGBA{0, 0, 0, 0})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	column := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(16),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)
	root.AddChild(column)

	column.AddChild(menuText(title, fonts.Title, titleColor))
	if subtitle != "" {
		column.AddChild(menuText(subtitle, fonts.Normal, buttonText))
	}

	img := &widget.ButtonImage{
		Idle:    euiimage.NewNineSliceColor(buttonIdle),
		Hover:   euiimage.NewNineSliceColor(buttonHover),
		Pressed: euiimage.NewNineSliceColor(buttonPressed),
	}
	for _, b := range buttons {
		onClick := b.onClick
		column.AddChild(widget.NewButton(
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
				Stretch:  true,
			})),
			widget.ButtonOpts.Image(img),
			widget.ButtonOpts.Text(b.label, fonts.Normal, &widget.ButtonTextColor{Idle: buttonText}),
			widget.ButtonOpts.TextPadding(widget.Insets{Left: 30, Right: 30, Top: 8, Bottom: 8}),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	return &ebitenui.UI{Container: root}
}

func menuText(s string, face font.Face, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, face, clr),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
		})),
	)
}

// -- menu

type menuState struct {
	g  *Game
	ui *ebitenui.UI
}

func newMenuState(g *Game) *menuState {
	s := &menuState{g: g}
	s.ui = newMenuUI(g.fonts, g.cfg.Window.Title, color.NRGBA{255, 255, 255, 255},
		"ENTER to start, ESC to quit",
		[]menuButton{
			{"Start", s.start},
			{"Quit", g.Quit},
		})
	return s
}

func (s *menuState) start() {
	s.g.SetState(newLevelStartState(s.g, s.g.cfg.World.Map, 1))
}

func (s *menuState) Update(dt float64) error {
	if justPressed(ebiten.KeyEnter) {
		s.start()
		return nil
	}
	if justPressed(ebiten.KeyEscape) {
		s.g.Quit()
		return nil
	}
	s.ui.Update()
	return nil
}

func (s *menuState) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackground)
	s.ui.Draw(screen)
}

// -- game over

type gameOverState struct {
	g       *Game
	ui      *ebitenui.UI
	mapPath string
	time    float64
}

func newGameOverState(g *Game, mapPath string) *gameOverState {
	s := &gameOverState{g: g, mapPath: mapPath}
	s.ui = newMenuUI(g.fonts, "GAME OVER", color.NRGBA{240, 70, 70, 255},
		"ENTER to restart, ESC for the menu",
		[]menuButton{
			{"Restart", s.restart},
			{"Menu", s.menu},
		})
	return s
}

func (s *gameOverState) restart() {
	s.g.SetState(newLevelStartState(s.g, s.mapPath, 1))
}

func (s *gameOverState) menu() {
	s.g.SetState(newMenuState(s.g))
}

func (s *gameOverState) Update(dt float64) error {
	s.time += dt
	switch {
	case justPressed(ebiten.KeyEnter):
		s.restart()
	case justPressed(ebiten.KeyEscape):
		s.menu()
	default:
		s.ui.Update()
	}
	return nil
}

func (s *gameOverState) Draw(screen *ebiten.Image) {
	a := min(1, s.time*0.8)
	screen.Fill(withAlpha(color.NRGBA{10, 10, 14, 255}, 0.2+0.8*a))
	s.ui.Draw(screen)
}
