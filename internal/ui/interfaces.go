package ui

// Controller receives user intent from the view. The app package owns
// the actual state transitions; the view only reports gestures.
type Controller interface {
	OnSubmitAnswer(name string, yes bool)
	OnGoHome()
	OnToggleAdmin()
	OnSubmitPin(candidate string)
	OnClearResponses(confirmed bool)
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetScreen(screen Screen)
	SetOutcome(state OutcomeState)
	SetAdminState(state AdminState)
	FlashStatus(msg string)
}

// Screen is the single mutually exclusive UI state. The admin overlay
// is layered on top and never changes it.
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenCelebrate
	ScreenDeclined
)

func (s Screen) String() string {
	switch s {
	case ScreenCelebrate:
		return "celebrate"
	case ScreenDeclined:
		return "declined"
	default:
		return "landing"
	}
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

// OutcomeState feeds the celebrate/declined screens.
type OutcomeState struct {
	Name string
	Yes  bool
}

// AdminState mirrors the controller's overlay state. Rows arrive
// newest first.
type AdminState struct {
	Visible   bool
	Unlocked  bool
	Responses []ResponseRow
}

type ResponseRow struct {
	When     string
	Relative string
	Name     string
	Answer   string
	Screen   string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	Question     string
	PleaMD       string
	StyleVariant string
	MotionLevel  string
}
