package app

import (
	"errors"
	"testing"

	"github.com/janambabi/Forgive-Me/internal/kv"
	"github.com/janambabi/Forgive-Me/internal/responses"
	"github.com/janambabi/Forgive-Me/internal/telemetry"
	"github.com/janambabi/Forgive-Me/internal/ui"
)

type fakeView struct {
	screen  ui.Screen
	outcome ui.OutcomeState
	admin   ui.AdminState
	flashes []string
	stopped bool
}

func (f *fakeView) Run() error                    { return nil }
func (f *fakeView) Stop()                         { f.stopped = true }
func (f *fakeView) SetController(ui.Controller)   {}
func (f *fakeView) SetScreen(s ui.Screen)         { f.screen = s }
func (f *fakeView) SetOutcome(o ui.OutcomeState)  { f.outcome = o }
func (f *fakeView) SetAdminState(s ui.AdminState) { f.admin = s }
func (f *fakeView) FlashStatus(msg string)        { f.flashes = append(f.flashes, msg) }

func testLogger(t *testing.T) *telemetry.JSONLogger {
	t.Helper()
	logger, err := telemetry.NewJSONLogger("")
	if err != nil {
		t.Fatal(err)
	}
	return logger
}

func newTestApp(t *testing.T, store kv.Store) (*App, *fakeView) {
	t.Helper()
	logger := testLogger(t)
	fv := &fakeView{}
	cfg := DefaultConfig()
	a := &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		log:       responses.NewLog(store, cfg.StorageKey, nil, logger),
		view:      fv,
		sessionID: "test-session",
		screen:    ui.ScreenLanding,
	}
	return a, fv
}

func TestSubmitYesCelebrates(t *testing.T) {
	a, fv := newTestApp(t, kv.NewMemory())

	a.OnSubmitAnswer("Maya", true)

	if fv.screen != ui.ScreenCelebrate {
		t.Fatalf("expected celebrate screen, got %v", fv.screen)
	}
	if fv.outcome.Name != "Maya" || !fv.outcome.Yes {
		t.Fatalf("unexpected outcome: %+v", fv.outcome)
	}
	recs := a.log.All()
	if len(recs) != 1 || recs[0].Answer != responses.AnswerYes {
		t.Fatalf("expected one yes record, got %+v", recs)
	}
}

func TestSubmitNoDeclines(t *testing.T) {
	a, fv := newTestApp(t, kv.NewMemory())

	a.OnSubmitAnswer("Sam", false)

	if fv.screen != ui.ScreenDeclined {
		t.Fatalf("expected declined screen, got %v", fv.screen)
	}
	if fv.outcome.Yes {
		t.Fatalf("expected a no outcome")
	}
}

func TestEmptyNameIsRejected(t *testing.T) {
	a, fv := newTestApp(t, kv.NewMemory())

	a.OnSubmitAnswer("   ", true)

	if a.log.Len() != 0 {
		t.Fatalf("expected no record for a blank name")
	}
	if fv.screen != ui.ScreenLanding {
		t.Fatalf("expected to stay on landing, got %v", fv.screen)
	}
	if len(fv.flashes) == 0 || fv.flashes[len(fv.flashes)-1] == "" {
		t.Fatalf("expected a status nudge about the name")
	}
}

func TestNameIsTrimmedBeforeRecording(t *testing.T) {
	a, _ := newTestApp(t, kv.NewMemory())

	a.OnSubmitAnswer("  Maya  ", true)

	recs := a.log.All()
	if len(recs) != 1 || recs[0].Name != "Maya" {
		t.Fatalf("expected trimmed name, got %+v", recs)
	}
}

func TestAnswerStampsSubmittingScreen(t *testing.T) {
	a, _ := newTestApp(t, kv.NewMemory())

	a.OnSubmitAnswer("Maya", true)

	recs := a.log.All()
	if len(recs) != 1 || recs[0].PageAt != "landing" {
		t.Fatalf("expected pageAt landing, got %+v", recs)
	}
}

func TestGoHomeClosesAdminAndResetsScreen(t *testing.T) {
	a, fv := newTestApp(t, kv.NewMemory())
	a.OnSubmitAnswer("Maya", true)
	a.OnToggleAdmin()
	if !fv.admin.Visible {
		t.Fatalf("expected admin overlay open")
	}

	a.OnGoHome()

	if fv.screen != ui.ScreenLanding {
		t.Fatalf("expected landing after home, got %v", fv.screen)
	}
	if fv.admin.Visible {
		t.Fatalf("expected admin overlay closed after home")
	}
}

func TestToggleAdminStartsLocked(t *testing.T) {
	a, fv := newTestApp(t, kv.NewMemory())

	a.OnToggleAdmin()

	if !fv.admin.Visible || fv.admin.Unlocked {
		t.Fatalf("expected visible locked admin, got %+v", fv.admin)
	}
	if len(fv.admin.Responses) != 0 {
		t.Fatalf("expected no rows exposed while locked")
	}
}

func TestPinMatchIsExactAndCaseSensitive(t *testing.T) {
	a, fv := newTestApp(t, kv.NewMemory())
	a.cfg.AdminPin = "Rose"
	a.OnToggleAdmin()

	a.OnSubmitPin("rose")
	if fv.admin.Unlocked {
		t.Fatalf("expected case-mismatched pin to stay locked")
	}
	a.OnSubmitPin("Rose ")
	if fv.admin.Unlocked {
		t.Fatalf("expected padded pin to stay locked")
	}
	a.OnSubmitPin("Rose")
	if !fv.admin.Unlocked {
		t.Fatalf("expected exact pin to unlock")
	}
}

func TestUnlockedAdminListsNewestFirst(t *testing.T) {
	a, fv := newTestApp(t, kv.NewMemory())
	a.OnSubmitAnswer("First", false)
	a.OnGoHome()
	a.OnSubmitAnswer("Second", true)
	a.OnToggleAdmin()
	a.OnSubmitPin(a.cfg.AdminPin)

	rows := fv.admin.Responses
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Second" || rows[1].Name != "First" {
		t.Fatalf("expected newest first, got %+v", rows)
	}
	if rows[0].Relative == "" {
		t.Fatalf("expected a relative timestamp")
	}
}

func TestClearHonorsConfirmation(t *testing.T) {
	a, _ := newTestApp(t, kv.NewMemory())
	a.OnSubmitAnswer("Maya", true)

	a.OnClearResponses(false)
	if a.log.Len() != 1 {
		t.Fatalf("expected unconfirmed clear to be a no-op")
	}

	a.OnClearResponses(true)
	if a.log.Len() != 0 {
		t.Fatalf("expected confirmed clear to empty the log")
	}
}

type brokenStore struct{ kv.Store }

func (brokenStore) Set(string, string) error { return errors.New("disk full") }

func TestPersistenceFailureStillTransitions(t *testing.T) {
	a, fv := newTestApp(t, brokenStore{kv.NewMemory()})

	a.OnSubmitAnswer("Maya", true)

	if fv.screen != ui.ScreenCelebrate {
		t.Fatalf("expected celebrate despite persistence failure, got %v", fv.screen)
	}
	if a.log.Len() != 1 {
		t.Fatalf("expected in-memory record to survive, got %d", a.log.Len())
	}
}

func TestQuitStopsView(t *testing.T) {
	a, fv := newTestApp(t, kv.NewMemory())

	a.OnQuit()

	if !fv.stopped {
		t.Fatalf("expected quit to stop the view")
	}
}

func TestValidateDefaultsAndRejects(t *testing.T) {
	cfg := Config{DataDir: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store != "file" || cfg.AdminPin != "0214" || cfg.UI.StyleVariant != "rose_glow" {
		t.Fatalf("expected defaults applied, got %+v", cfg)
	}

	bad := Config{Store: "redis", DataDir: t.TempDir()}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid store backend to be rejected")
	}
	badHook := Config{WebhookURL: "not-a-url", DataDir: t.TempDir()}
	if err := badHook.Validate(); err == nil {
		t.Fatalf("expected invalid webhook url to be rejected")
	}
}
