package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

type applyMsg struct {
	fn func(*Root)
}

type clockMsg time.Time
type animateMsg time.Time

type promptKeyMap struct {
	Choose key.Binding
	Submit key.Binding
	Home   key.Binding
	Admin  key.Binding
	Quit   key.Binding
}

func (k promptKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Submit, k.Home, k.Admin, k.Quit}
}

func (k promptKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Choose, k.Submit}, {k.Home, k.Admin, k.Quit}}
}

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string

	mu      sync.Mutex
	program *tea.Program
	running bool

	screen Screen
	layout LayoutMode
	cols   int
	rows   int

	question     string
	pleaRendered string

	outcome     OutcomeState
	admin       AdminState
	clearOpen   bool
	clearIndex  int
	adminIndex  int
	choice      int
	statusFlash string

	nameInput textinput.Model
	pinInput  textinput.Model

	help       help.Model
	keymap     promptKeyMap
	yesBar     progress.Model
	logger     *clog.Logger
	hearts     *particleField
	spring     harmonica.Spring
	overlayPos float64
	overlayVel float64

	lastInputEvent string
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "forgiveme-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	plea := strings.TrimSpace(opts.PleaMD)
	if plea != "" {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(56),
		)
		if err == nil {
			if rendered, err := renderer.Render(plea); err == nil {
				plea = strings.TrimSpace(ansi.Strip(rendered))
			}
		}
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)
	spring := harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)
	switch motionLevel {
	case "reduced":
		spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}
	yesBar := progress.New(
		progress.WithWidth(24),
		progress.WithColors(lipgloss.Color("#FF7AA8"), lipgloss.Color("#79E6A6"), lipgloss.Color("#F2D16B")),
		progress.WithScaled(true),
	)
	if motionLevel == "off" {
		yesBar.SetSpringOptions(1000.0, 1.0)
	}

	nameInput := textinput.New()
	nameInput.Placeholder = "your name"
	nameInput.CharLimit = 40
	nameInput.Focus()

	pinInput := textinput.New()
	pinInput.Placeholder = "pin"
	pinInput.CharLimit = 16
	pinInput.EchoMode = textinput.EchoPassword

	r := &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		screen:       ScreenLanding,
		layout:       LayoutWide,
		cols:         100,
		rows:         30,
		question:     firstNonEmptyStr(opts.Question, "Will you forgive me?"),
		pleaRendered: plea,
		nameInput:    nameInput,
		pinInput:     pinInput,
		help:         h,
		yesBar:       yesBar,
		logger:       logger,
		hearts:       newParticleField(opts.ASCIIOnly, time.Now().UnixNano()),
		spring:       spring,
	}
	r.keymap = promptKeyMap{
		Choose: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "Choose")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Answer")),
		Home:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Home")),
		Admin:  key.NewBinding(key.WithKeys("f12"), key.WithHelp("F12", "Admin")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("Ctrl+Q", "Quit")),
	}
	return r
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), animateTickCmd())
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case clockMsg:
		return r, clockTickCmd()
	case animateMsg:
		target := 0.0
		if r.admin.Visible {
			target = 1.0
		}
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, target)
		heartsActive := r.screen == ScreenCelebrate && r.motionLevel != "off"
		if heartsActive {
			r.hearts.step(r.cols, r.rows)
		}
		if r.shouldAnimate(target) || heartsActive {
			return r, animateTickCmd()
		}
		if target == 0 {
			r.overlayPos = 0
			r.overlayVel = 0
		} else {
			r.overlayPos = 1
			r.overlayVel = 0
		}
		return r, nil
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}

	// Everything else (cursor blinks and friends) goes to whichever
	// input currently has the user's attention.
	var inputCmd tea.Cmd
	if r.admin.Visible && !r.admin.Unlocked {
		r.pinInput, inputCmd = r.pinInput.Update(msg)
	} else if r.screen == ScreenLanding && !r.overlayActive() {
		r.nameInput, inputCmd = r.nameInput.Update(msg)
	}
	return r, inputCmd
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			if r.statusFlash == "" {
				r.statusFlash = "Recovered UI panic"
			}
			view = tea.NewView(r.theme.No.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	if r.cols < 1 {
		r.cols = 100
	}
	if r.rows < 1 {
		r.rows = 30
	}

	var base string
	switch r.screen {
	case ScreenCelebrate:
		base = r.renderCelebrate()
	case ScreenDeclined:
		base = r.renderDeclined()
	default:
		base = r.renderLanding()
	}

	if r.screen == ScreenCelebrate && r.motionLevel != "off" {
		base = r.hearts.paint(ansi.Strip(base), r.cols, r.rows)
	}
	if overlay := r.renderOverlay(); overlay != "" {
		base = composeOverlay(base, overlay, r.cols, r.rows)
	}
	v := tea.NewView(base)
	v.AltScreen = true
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetScreen(screen Screen) {
	r.apply(func(m *Root) {
		m.screen = screen
		if screen == ScreenCelebrate {
			m.hearts.reset()
		}
	})
}

func (r *Root) SetOutcome(state OutcomeState) {
	r.apply(func(m *Root) {
		m.outcome = state
	})
}

func (r *Root) SetAdminState(state AdminState) {
	r.apply(func(m *Root) {
		m.admin = state
		if m.adminIndex >= len(state.Responses) {
			m.adminIndex = max(0, len(state.Responses)-1)
		}
		if !state.Visible {
			m.clearOpen = false
			m.clearIndex = 0
		}
		if m.motionLevel == "off" {
			if state.Visible {
				m.overlayPos = 1
			} else {
				m.overlayPos = 0
			}
			m.overlayVel = 0
		}
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+q"))) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}

	if r.clearOpen {
		return r.handleClearConfirmKey(msg)
	}

	if msg.Code == tea.KeyF12 {
		r.dispatchController(func(c Controller) { c.OnToggleAdmin() })
		return r, nil
	}

	if r.admin.Visible {
		return r.handleAdminKey(msg)
	}

	switch r.screen {
	case ScreenLanding:
		return r.handleLandingKey(msg)
	default:
		return r.handleOutcomeKey(msg)
	}
}

func (r *Root) handleLandingKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyLeft:
		r.choice = 0
		return r, nil
	case tea.KeyRight:
		r.choice = 1
		return r, nil
	case tea.KeyTab:
		r.choice = wrapIndex(r.choice+1, 2)
		return r, nil
	case tea.KeyEnter:
		name := r.nameInput.Value()
		yes := r.choice == 0
		r.dispatchController(func(c Controller) { c.OnSubmitAnswer(name, yes) })
		return r, nil
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnGoHome() })
		return r, nil
	}
	var cmd tea.Cmd
	r.nameInput, cmd = r.nameInput.Update(msg)
	return r, cmd
}

func (r *Root) handleOutcomeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyEnter, tea.KeyEsc, 'h':
		r.dispatchController(func(c Controller) { c.OnGoHome() })
	}
	return r, nil
}

func (r *Root) handleAdminKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.Code == tea.KeyEsc {
		r.dispatchController(func(c Controller) { c.OnToggleAdmin() })
		return r, nil
	}
	if !r.admin.Unlocked {
		if msg.Code == tea.KeyEnter {
			candidate := r.pinInput.Value()
			r.dispatchController(func(c Controller) { c.OnSubmitPin(candidate) })
			return r, nil
		}
		var cmd tea.Cmd
		r.pinInput, cmd = r.pinInput.Update(msg)
		return r, cmd
	}
	switch msg.Code {
	case tea.KeyUp:
		r.adminIndex = max(0, r.adminIndex-1)
	case tea.KeyDown:
		r.adminIndex = min(max(0, len(r.admin.Responses)-1), r.adminIndex+1)
	case 'c', tea.KeyDelete:
		r.clearOpen = true
		r.clearIndex = 0
	}
	return r, nil
}

func (r *Root) handleClearConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyLeft, tea.KeyUp:
		r.clearIndex = 0
	case tea.KeyRight, tea.KeyDown, tea.KeyTab:
		r.clearIndex = 1
	case tea.KeyEnter:
		confirmed := r.clearIndex == 1
		r.clearOpen = false
		r.clearIndex = 0
		r.dispatchController(func(c Controller) { c.OnClearResponses(confirmed) })
	case tea.KeyEsc:
		r.clearOpen = false
		r.clearIndex = 0
		r.dispatchController(func(c Controller) { c.OnClearResponses(false) })
	}
	return r, nil
}

func (r *Root) renderLanding() string {
	w, h := r.cols, r.rows
	if DetermineLayoutMode(w, h) == LayoutTooSmall {
		return r.renderTooSmall()
	}
	header := r.theme.Header.Width(max(1, w)).Render(trimForWidth("Forgive Me", max(1, w-1)))

	cursor := "▌"
	if r.ascii {
		cursor = "_"
	}
	yes := "   Yes   "
	no := "   No   "
	if r.choice == 0 {
		yes = " > Yes < "
	} else {
		no = " > No < "
	}

	lines := []string{}
	if r.pleaRendered != "" {
		lines = append(lines, strings.Split(r.pleaRendered, "\n")...)
		lines = append(lines, "")
	}
	lines = append(lines,
		"Name: "+r.nameInput.Value()+cursor,
		"",
		yes+"    "+no,
	)
	panelW := min(64, max(40, w-8))
	panelH := len(lines) + 2
	panel := r.drawPanel(r.question, lines, panelW, panelH)
	body := lipgloss.Place(w, max(3, h-2), lipgloss.Center, lipgloss.Center, panel)
	return header + "\n" + body + "\n" + r.statusText()
}

func (r *Root) renderCelebrate() string {
	w, h := r.cols, r.rows
	if DetermineLayoutMode(w, h) == LayoutTooSmall {
		return r.renderTooSmall()
	}
	header := r.theme.Header.Width(max(1, w)).Render(trimForWidth("Forgive Me", max(1, w-1)))

	heart := "♥"
	if r.ascii {
		heart = "<3"
	}
	name := strings.TrimSpace(r.outcome.Name)
	thanks := "Thank you! " + heart
	if name != "" {
		thanks = "Thank you, " + name + "! " + heart
	}
	lines := []string{
		"",
		thanks,
		"",
		"You just made someone very, very happy.",
		"",
		"Enter: Home",
	}
	panel := r.drawPanel("Yay!", lines, min(56, max(36, w-8)), len(lines)+2)
	body := lipgloss.Place(w, max(3, h-2), lipgloss.Center, lipgloss.Center, panel)
	return header + "\n" + body + "\n" + r.statusText()
}

func (r *Root) renderDeclined() string {
	w, h := r.cols, r.rows
	if DetermineLayoutMode(w, h) == LayoutTooSmall {
		return r.renderTooSmall()
	}
	header := r.theme.Header.Width(max(1, w)).Render(trimForWidth("Forgive Me", max(1, w-1)))

	lines := []string{
		"",
		"That's okay.",
		"",
		"Thank you for being honest. The door stays open.",
		"",
		"Enter: Home",
	}
	panel := r.drawPanel("Understood", lines, min(56, max(36, w-8)), len(lines)+2)
	body := lipgloss.Place(w, max(3, h-2), lipgloss.Center, lipgloss.Center, panel)
	return header + "\n" + body + "\n" + r.statusText()
}

func (r *Root) renderTooSmall() string {
	msg := []string{
		"Terminal too small",
		fmt.Sprintf("Current: %dx%d", r.cols, r.rows),
		"Minimum: 52x16",
		"Resize the terminal to continue.",
	}
	panel := r.drawPanel("Resize Required", msg, min(44, max(20, r.cols)), min(10, max(6, r.rows)))
	return lipgloss.Place(max(1, r.cols), max(1, r.rows), lipgloss.Center, lipgloss.Center, panel)
}

func (r *Root) statusText() string {
	keys := r.help.View(r.keymap)
	if keys == "" {
		keys = "←/→ Choose  Enter Answer  Esc Home  F12 Admin  Ctrl+Q Quit"
	}
	if r.statusFlash != "" {
		keys += " | " + r.statusFlash
	}
	keys = trimForWidth(keys, max(1, r.cols-1))
	return r.theme.Status.Width(max(1, r.cols)).Render(keys)
}

func (r *Root) renderOverlay() string {
	spec, ok := r.overlaySpec(r.topOverlay())
	if !ok {
		return ""
	}
	return r.drawPanel(spec.title, spec.lines, spec.width, spec.height)
}

type overlaySpec struct {
	title  string
	lines  []string
	width  int
	height int
}

func (r *Root) topOverlay() string {
	switch {
	case r.clearOpen:
		return "clear"
	case r.admin.Visible:
		return "admin"
	}
	return ""
}

func (r *Root) overlayActive() bool {
	return r.topOverlay() != ""
}

func (r *Root) overlaySpec(top string) (overlaySpec, bool) {
	if top == "" {
		return overlaySpec{}, false
	}
	w := min(max(56, r.cols-12), r.cols)
	h := min(max(10, r.rows/2), max(8, r.rows-4))

	var title string
	var lines []string
	switch top {
	case "admin":
		title = "Responses"
		lines = r.adminLines()
		progress := r.overlayPos
		if r.admin.Visible && progress < 0.2 {
			progress = 0.2
		}
		scaled := int(float64(w) * maxFloat(progress, 0))
		if scaled < 28 {
			return overlaySpec{}, false
		}
		w = min(w, scaled)
	case "clear":
		title = "Clear Responses"
		lines = []string{"Discard every recorded answer and erase the saved copy?", ""}
		labels := []string{"Cancel", "Clear"}
		for i, label := range labels {
			prefix := "  "
			if i == r.clearIndex {
				prefix = "> "
			}
			lines = append(lines, prefix+label)
		}
	default:
		return overlaySpec{}, false
	}
	if len(lines) == 0 {
		lines = []string{"(empty)"}
	}
	needH := len(lines) + 2
	maxH := max(8, r.rows-4)
	if needH > h {
		h = min(needH, maxH)
	}
	return overlaySpec{title: title, lines: lines, width: w, height: h}, true
}

func (r *Root) adminLines() []string {
	if !r.admin.Unlocked {
		return []string{
			"This view lists everything that was answered so far.",
			"",
			"PIN: " + strings.Repeat("*", len(r.pinInput.Value())),
			"",
			"Enter: Unlock    Esc: Close",
		}
	}

	total := len(r.admin.Responses)
	yesCount := 0
	for _, row := range r.admin.Responses {
		if row.Answer == "yes" {
			yesCount++
		}
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(yesCount) / float64(total)
	}

	lines := []string{
		fmt.Sprintf("Total: %d    Yes: %d    No: %d", total, yesCount, total-yesCount),
		r.yesRatioBar(24, ratio),
		"",
	}
	if total == 0 {
		lines = append(lines, "No responses recorded yet.")
	}
	start := r.adminIndex
	if start < 0 {
		start = 0
	}
	if total > 0 && start > total-1 {
		start = total - 1
	}
	for _, row := range r.admin.Responses[min(start, total):] {
		when := firstNonEmptyStr(row.Relative, row.When)
		name := row.Name
		if strings.TrimSpace(name) == "" {
			name = "(anonymous)"
		}
		lines = append(lines, fmt.Sprintf("%-14s %-16s %-4s (%s)", trimForWidth(when, 14), trimForWidth(name, 16), row.Answer, row.Screen))
	}
	lines = append(lines, "", "c: Clear all    ↑/↓: Scroll    Esc: Close")
	return lines
}

func (r *Root) yesRatioBar(width int, ratio float64) string {
	m := r.yesBar
	m.SetWidth(max(8, width))
	return m.ViewAs(ratio)
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h := "─"
	v := "│"
	tl := "┌"
	tr := "┐"
	bl := "└"
	br := "┘"
	if r.ascii {
		h = "-"
		v = "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(h, innerW) + tr
	if title != "" && innerW > 2 {
		t := " " + title + " "
		runes := []rune(top)
		start := 1
		for i, ch := range []rune(t) {
			pos := start + i
			if pos >= len(runes)-1 {
				break
			}
			runes[pos] = ch
		}
		top = string(runes)
	}

	out := make([]string, 0, height)
	out = append(out, r.theme.PanelBorder.Render(top))
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		line = padRune(line, innerW)
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(line)+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) animateIfNeeded() tea.Cmd {
	target := 0.0
	if r.admin.Visible {
		target = 1.0
	}
	if r.shouldAnimate(target) {
		return animateTickCmd()
	}
	if r.screen == ScreenCelebrate && r.motionLevel != "off" {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		return false
	}
	if target > 0 {
		return r.overlayPos < 0.999 || abs(r.overlayVel) > 0.001
	}
	return r.overlayPos > 0.001 || abs(r.overlayVel) > 0.001
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func composeOverlay(base, overlay string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	base = ansi.Strip(base)
	overlay = ansi.Strip(overlay)
	baseLines := strings.Split(base, "\n")
	if len(baseLines) < rows {
		pad := make([]string, rows-len(baseLines))
		baseLines = append(baseLines, pad...)
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	if len(overlayLines) == 0 {
		return strings.Join(baseLines[:rows], "\n")
	}
	ow := 1
	for _, line := range overlayLines {
		lw := len([]rune(line))
		if lw > ow {
			ow = lw
		}
	}
	if ow > cols {
		ow = cols
	}
	oh := len(overlayLines)
	if oh > rows {
		oh = rows
	}
	startRow := (rows - oh) / 2
	startCol := (cols - ow) / 2
	if startCol < 0 {
		startCol = 0
	}

	for i := 0; i < oh; i++ {
		row := startRow + i
		if row < 0 || row >= rows {
			continue
		}
		dst := []rune(baseLines[row])
		src := []rune(overlayLines[i])
		if len(src) > ow {
			src = src[:ow]
		}
		for j := 0; j < ow && startCol+j < len(dst); j++ {
			dst[startCol+j] = ' '
		}
		for j := 0; j < len(src) && startCol+j < len(dst); j++ {
			dst[startCol+j] = src[j]
		}
		baseLines[row] = string(dst)
	}
	return strings.Join(baseLines[:rows], "\n")
}

func firstNonEmptyStr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "rose_glow", "quiet_night", "paper_letter":
		return strings.TrimSpace(v)
	default:
		return "rose_glow"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}

	message := fmt.Sprintf("%v", recovered)
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", message,
		"messageType", msgType,
		"screen", r.screen.String(),
		"cols", r.cols,
		"rows", r.rows,
		"overlay", r.topOverlay(),
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}
