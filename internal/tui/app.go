// Package tui renders the slide-out menu in a terminal with bubbletea and
// feeds it keyboard and mouse input.
package tui

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/sidemenu/internal/config"
	"github.com/jask/sidemenu/internal/gesture"
	"github.com/jask/sidemenu/internal/menu"
	"github.com/jask/sidemenu/internal/service"
	"github.com/jask/sidemenu/internal/transition"
)

// App is the bubbletea model. The transition controller decides what is
// shown; App only translates input into controller calls and draws the
// presentation the controller last applied.
type App struct {
	ctx     context.Context
	cfg     config.Config
	logger  *zap.Logger
	session *service.Session

	sink    *termSink
	ctrl    *transition.Controller
	tracker *gesture.Tracker
	keys    *KeyRegistry
	help    help.Model

	list   *menu.List
	router *menu.Router
	menu   *menu.Menu

	width, height int
	frame         time.Duration
	ticking       bool
	tickGen       uint64

	// source and selected describe the input that started the transition
	// currently in flight; they are journaled when it commits.
	source   string
	selected string
	jump     string
	showHelp bool
	status   string
	pending  []tea.Cmd
	now      func() time.Time
}

type frameMsg struct{ gen uint64 }

type itemsMsg struct {
	items  []menu.Item
	resume service.Resume
}

type configMsg struct {
	cfg config.Config
	err error
}

type statusMsg string

type errMsg struct{ error }

// New builds the model. session may be nil, in which case nothing is
// loaded or persisted.
func New(ctx context.Context, cfg config.Config, session *service.Session, logger *zap.Logger) (*App, error) {
	tcfg, err := cfg.Transition(transition.Size{})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sink := &termSink{}
	ctrl, err := transition.NewController(tcfg, sink, transition.WithLogger(logger.Named("transition")))
	if err != nil {
		return nil, err
	}
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		logger:  logger,
		session: session,
		sink:    sink,
		ctrl:    ctrl,
		tracker: gesture.NewTracker(cfg.UI.VelocityScale),
		keys:    NewKeyRegistry(),
		help:    help.New(),
		frame:   frameInterval(cfg.UI.FPS),
		now:     time.Now,
	}
	a.setItems(itemsMsg{})
	ctrl.Subscribe(a.onCommit)
	return a, nil
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

func (a *App) Init() tea.Cmd {
	return a.loadItems()
}

// WatchConfig forwards config file changes to the program through send.
func (a *App) WatchConfig(send func(tea.Msg)) error {
	return config.Watch(func(cfg config.Config, err error) {
		send(configMsg{cfg: cfg, err: err})
	})
}

func (a *App) loadItems() tea.Cmd {
	if a.session == nil {
		return nil
	}
	ctx, session, itemsFile := a.ctx, a.session, a.cfg.UI.ItemsFile
	return func() tea.Msg {
		if itemsFile != "" {
			f, err := os.Open(itemsFile)
			if err != nil {
				return errMsg{fmt.Errorf("open items file: %w", err)}
			}
			_, err = session.ImportItems(ctx, f, true)
			_ = f.Close()
			if err != nil {
				return errMsg{fmt.Errorf("import %s: %w", itemsFile, err)}
			}
		}
		items, err := session.Items(ctx)
		if err != nil {
			return errMsg{err}
		}
		resume, err := session.Resume(ctx)
		if err != nil {
			return errMsg{err}
		}
		return itemsMsg{items: items, resume: resume}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(m.Width, m.Height)
	case tea.KeyMsg:
		cmd = a.handleKey(m)
	case tea.MouseMsg:
		a.handleMouse(m)
	case tea.BlurMsg:
		a.feed(a.tracker.Cancel())
	case frameMsg:
		cmd = a.handleFrame(m)
	case itemsMsg:
		a.setItems(m)
	case configMsg:
		a.applyConfig(m)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.logger.Error("menu app error", zap.Error(m.error))
		a.status = "error: " + m.Error()
	}
	return a, a.flush(cmd)
}

// flush batches cmd with work queued during the update and keeps a frame
// tick scheduled while the controller animates.
func (a *App) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(a.pending, cmd, a.ensureTicking())
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) ensureTicking() tea.Cmd {
	if !a.ctrl.Animating() {
		return nil
	}
	gen := a.ctrl.Generation()
	if a.ticking && a.tickGen == gen {
		return nil
	}
	a.ticking = true
	a.tickGen = gen
	return a.tick(gen)
}

func (a *App) tick(gen uint64) tea.Cmd {
	return tea.Tick(a.frame, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// handleFrame advances the animation one frame. Ticks scheduled for an
// older generation belong to an animation that was retargeted or
// interrupted and are dropped.
func (a *App) handleFrame(m frameMsg) tea.Cmd {
	if !a.ticking || m.gen != a.tickGen {
		return nil
	}
	a.ticking = false
	if m.gen != a.ctrl.Generation() {
		return nil
	}
	if a.ctrl.Step(a.frame) {
		a.ticking = true
		return a.tick(m.gen)
	}
	return nil
}

// resize records the new bounds and re-sizes the menu when its geometry
// follows the terminal.
func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.sink.bounds = transition.Size{Width: float64(width), Height: float64(a.bodyHeight())}
	tcfg, err := a.cfg.Transition(a.sink.bounds)
	if err != nil || tcfg == a.ctrl.Config() {
		a.ctrl.Relayout()
		return
	}
	if err := a.ctrl.Reconfigure(tcfg); err != nil {
		a.logger.Warn("menu resize rejected", zap.Error(err))
		a.ctrl.Relayout()
	}
}

func (a *App) bodyHeight() int {
	return max(0, a.height-1)
}

func (a *App) setItems(m itemsMsg) {
	a.list = menu.NewList(m.items)
	a.router = menu.NewRouter(m.items)
	a.menu = menu.New(a.list, a.router, a.ctrl, a.logger.Named("menu"))

	if m.resume.Destination != "" {
		if i, err := a.list.IndexOf(m.resume.Destination); err == nil {
			_ = a.router.NavigateTo(i)
			_ = a.list.SetCursor(i)
		}
	}
	a.router.OnChange(a.onNavigate)
	a.ctrl.Restore(m.resume.State)
}

func (a *App) applyConfig(m configMsg) {
	if m.err != nil {
		a.logger.Warn("config reload failed", zap.Error(m.err))
		a.status = "config: " + m.err.Error()
		return
	}
	tcfg, err := m.cfg.Transition(a.sink.bounds)
	if err == nil {
		err = a.ctrl.Reconfigure(tcfg)
	}
	if err != nil {
		a.logger.Warn("config reload rejected", zap.Error(err))
		a.status = "config: " + err.Error()
		return
	}
	a.cfg = m.cfg
	a.frame = frameInterval(m.cfg.UI.FPS)
	if !a.tracker.Active() {
		a.tracker = gesture.NewTracker(m.cfg.UI.VelocityScale)
	}
	a.logger.Info("config reloaded", zap.Float64("menu_width", tcfg.MenuWidth))
	a.status = "config reloaded"
}

func (a *App) onCommit(s transition.State) {
	source, dest := a.source, ""
	if s == transition.Closed {
		dest = a.selected
		a.jump = ""
	}
	a.selected = ""
	a.logger.Debug("menu transition journaled",
		zap.Stringer("state", s),
		zap.String("source", source),
		zap.String("destination", dest))
	if a.session == nil {
		return
	}
	ctx, session := a.ctx, a.session
	a.pending = append(a.pending, func() tea.Msg {
		if err := session.Record(ctx, s, source, dest); err != nil {
			return errMsg{err}
		}
		return nil
	})
}

func (a *App) onNavigate(item menu.Item) {
	a.status = strings.TrimSpace(item.Icon + " " + item.Title)
	if a.session == nil {
		return
	}
	ctx, session := a.ctx, a.session
	a.pending = append(a.pending, func() tea.Msg {
		if err := session.RememberDestination(ctx, item.Destination); err != nil {
			return errMsg{err}
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// Input
// ---------------------------------------------------------------------------

func (a *App) scope() string {
	if a.ctrl.Target() == transition.Open {
		return scopeMenu
	}
	return scopeContent
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	scope := a.scope()
	action, ok := a.keys.Lookup(m.String(), scope)
	if !ok {
		if scope == scopeMenu && m.Type == tea.KeyRunes && len(m.Runes) > 0 {
			a.jumpTo(string(m.Runes))
		}
		return nil
	}
	switch action {
	case actionQuit:
		return tea.Quit
	case actionHelp:
		a.showHelp = !a.showHelp
	case actionToggle:
		a.source = service.SourceKeyboard
		a.ctrl.Toggle()
	case actionOpen:
		a.source = service.SourceKeyboard
		a.ctrl.Open()
	case actionDismiss:
		a.source = service.SourceKeyboard
		a.ctrl.Close()
	case actionUp:
		a.jump = ""
		a.list.MoveUp()
	case actionDown:
		a.jump = ""
		a.list.MoveDown()
	case actionSelect:
		a.selectItem(a.list.Cursor())
	case actionJumpBack:
		if r := []rune(a.jump); len(r) > 0 {
			a.jump = ""
			a.jumpTo(string(r[:len(r)-1]))
		}
	}
	return nil
}

// jumpTo appends typed text to the jump query and moves the cursor to the
// closest title.
func (a *App) jumpTo(typed string) {
	a.jump += typed
	if i, ok := a.list.Closest(a.jump); ok {
		_ = a.list.SetCursor(i)
	}
}

func (a *App) selectItem(i int) {
	item, err := a.list.Item(i)
	if err != nil {
		a.status = err.Error()
		return
	}
	a.source = service.SourceSelect
	a.selected = item.Destination
	if err := a.menu.Select(i); err != nil {
		a.selected = ""
		a.status = err.Error()
		return
	}
	if !a.ctrl.Animating() {
		// Already closed: nothing will commit to carry the destination.
		a.selected = ""
	}
}

func (a *App) handleMouse(m tea.MouseMsg) {
	now := a.now()
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft {
			// Wheel or another button mid-drag abandons the drag.
			a.feed(a.tracker.Cancel())
			return
		}
		a.tracker.Press(m.X, now)
	case tea.MouseActionMotion:
		a.feed(a.tracker.Move(m.X, now))
	case tea.MouseActionRelease:
		samples := a.tracker.Release(m.X, now)
		if len(samples) == 1 && samples[0].Kind == transition.Tap {
			a.handleTap(samples[0], m.X, m.Y)
			return
		}
		a.feed(samples)
	}
}

func (a *App) feed(samples []transition.GestureSample) {
	for _, s := range samples {
		a.source = service.SourcePan
		a.ctrl.HandleGesture(s)
	}
}

// handleTap selects an item when the tap lands on one. Elsewhere on the
// panel it does nothing; on the content it dismisses an open menu.
func (a *App) handleTap(s transition.GestureSample, x, y int) {
	if a.insidePanel(x) {
		if i, ok := a.itemAt(x, y); ok {
			a.selectItem(i)
		}
		return
	}
	if !a.ctrl.IsOpen() {
		return
	}
	a.source = service.SourceTap
	a.ctrl.HandleGesture(s)
}

func (a *App) panelRect() (x, width int) {
	p := a.sink.last
	return int(math.Round(p.PanelOffset)), int(math.Round(p.PanelWidth))
}

func (a *App) insidePanel(x int) bool {
	if a.sink.last.Progress <= 0 {
		return false
	}
	px, pw := a.panelRect()
	return x >= px && x < px+pw
}

// itemAt maps a cell inside the panel to an item index. Items start on the
// row below the top border.
func (a *App) itemAt(x, y int) (int, bool) {
	if !a.insidePanel(x) {
		return 0, false
	}
	i := y - 1
	if i < 0 || i >= a.list.Len() {
		return 0, false
	}
	return i, true
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	bodyH := a.bodyHeight()
	p := a.sink.last
	body := a.renderContent(canvas(a.width, bodyH), p, bodyH)
	if p.Progress > 0 {
		px, _ := a.panelRect()
		body = overlayAt(body, a.renderPanel(p, bodyH), px, 0, a.width, bodyH)
	}
	return body + "\n" + a.renderFooter()
}

// renderContent draws the current destination scaled about its centre and
// translated by the presentation, dimmed by the overlay.
func (a *App) renderContent(base string, p transition.Presentation, bodyH int) string {
	cw := max(4, int(math.Round(float64(a.width)*p.Scale)))
	ch := max(3, int(math.Round(float64(bodyH)*p.Scale)))
	x := (a.width-cw)/2 + int(math.Round(p.TranslateX))
	y := (bodyH-ch)/2 + int(math.Round(p.TranslateY))

	title, body := "sidemenu", "No destination yet."
	if item, ok := a.router.Current(); ok {
		title = strings.TrimSpace(item.Icon + " " + item.Title)
		body = item.Description
	}
	lines := []string{body, "", "Press m or drag right to open the menu."}
	pane := Pane{
		Title:      title,
		Content:    strings.Join(lines, "\n"),
		Rounded:    p.CornerRadius >= 0.5,
		Border:     dimmed(colorBorder, p.OverlayOpacity),
		Foreground: dimmed(colorText, p.OverlayOpacity),
	}
	return overlayAt(base, pane.Render(cw, ch), x, y, a.width, bodyH)
}

func (a *App) renderPanel(p transition.Presentation, bodyH int) string {
	_, pw := a.panelRect()
	items := a.list.Items()
	current := a.router.CurrentIndex()
	cursorStyle := lipgloss.NewStyle().Foreground(colorAccent).Background(colorSelected).Bold(true)
	currentStyle := lipgloss.NewStyle().Foreground(colorInfo)
	plain := lipgloss.NewStyle().Foreground(colorText)

	lines := make([]string, 0, len(items)+2)
	for i, it := range items {
		label := truncate(strings.TrimSpace(it.Icon+" "+it.Title), max(1, pw-6))
		switch {
		case i == a.list.Cursor():
			lines = append(lines, cursorStyle.Render("▸ "+label))
		case i == current:
			lines = append(lines, currentStyle.Render("• "+label))
		default:
			lines = append(lines, plain.Render("  "+label))
		}
	}
	if a.jump != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(colorSubtext0).Render("jump: "+a.jump))
	}
	pane := Pane{
		Title:   "Menu",
		Content: strings.Join(lines, "\n"),
		Rounded: p.CornerRadius >= 0.5,
		Focused: a.ctrl.Target() == transition.Open,
		Raw:     true,
	}
	return pane.Render(pw, bodyH)
}

func (a *App) renderFooter() string {
	var parts []string
	if a.status != "" {
		style := lipgloss.NewStyle().Foreground(colorInfo)
		if strings.HasPrefix(a.status, "error") {
			style = style.Foreground(colorError)
		}
		parts = append(parts, style.Render(a.status))
	}
	if a.showHelp {
		parts = append(parts, a.help.ShortHelpView(a.keys.HelpBindings(a.scope())))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOverlay0).Render("? help"))
	}
	return truncate(strings.Join(parts, "  "), a.width)
}
