package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/janambabi/Forgive-Me/internal/kv"
	"github.com/janambabi/Forgive-Me/internal/responses"
	"github.com/janambabi/Forgive-Me/internal/telemetry"
	"github.com/janambabi/Forgive-Me/internal/ui"
)

const defaultPlea = `I know I messed up, and I have been thinking about it ever since.

You matter to me more than being right ever will. I am sorry.`

// App owns the actual state machine. The view reports gestures through
// the Controller interface and the app pushes state back through View.
type App struct {
	cfg Config

	logger *telemetry.JSONLogger
	store  kv.Store
	log    *responses.Log
	view   ui.View

	sessionID string

	mu            sync.Mutex
	screen        ui.Screen
	adminVisible  bool
	adminUnlocked bool
}

func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	logger, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	var notifier responses.Notifier
	if cfg.WebhookURL != "" {
		notifier = responses.NewWebhookNotifier(cfg.WebhookURL, logger)
	}
	respLog := responses.NewLog(store, cfg.StorageKey, notifier, logger)
	respLog.Load()

	plea := defaultPlea
	if cfg.PleaPath != "" {
		raw, err := os.ReadFile(cfg.PleaPath)
		if err != nil {
			logger.Warn("plea.read_failed", map[string]any{"path": cfg.PleaPath, "error": err.Error()})
		} else {
			plea = string(raw)
		}
	}

	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		Question:     cfg.Question,
		PleaMD:       plea,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
	})

	a := &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		log:       respLog,
		view:      view,
		sessionID: uuid.NewString(),
		screen:    ui.ScreenLanding,
	}
	view.SetController(a)
	return a, nil
}

func openStore(cfg Config) (kv.Store, error) {
	switch cfg.Store {
	case "sqlite":
		store, err := kv.NewSQLite(filepath.Join(cfg.DataDir, "forgiveme.db"))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(context.Background()); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case "memory":
		return kv.NewMemory(), nil
	default:
		return kv.NewFileStore(filepath.Join(cfg.DataDir, "slots"))
	}
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", map[string]any{
		"session":   a.sessionID,
		"store":     a.cfg.Store,
		"responses": a.log.Len(),
	})

	a.view.SetScreen(ui.ScreenLanding)
	a.syncAdmin()

	go func() {
		<-ctx.Done()
		a.view.Stop()
	}()
	return a.view.Run()
}

func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

func (a *App) OnSubmitAnswer(name string, yes bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		a.logger.Info("answer.rejected", map[string]any{"reason": "empty_name"})
		a.view.FlashStatus("Please tell me your name first")
		return
	}

	answer := responses.AnswerNo
	if yes {
		answer = responses.AnswerYes
	}

	a.mu.Lock()
	pageAt := a.screen.String()
	next := ui.ScreenDeclined
	if yes {
		next = ui.ScreenCelebrate
	}
	a.screen = next
	a.mu.Unlock()

	rec := responses.NewRecord(name, answer, pageAt, time.Now())
	a.log.Append(rec)
	a.logger.Info("answer.recorded", map[string]any{
		"session": a.sessionID,
		"answer":  string(answer),
		"pageAt":  pageAt,
	})

	a.view.SetOutcome(ui.OutcomeState{Name: name, Yes: yes})
	a.view.SetScreen(next)
	a.view.FlashStatus("")
	a.syncAdmin()
}

func (a *App) OnGoHome() {
	a.mu.Lock()
	a.screen = ui.ScreenLanding
	a.adminVisible = false
	a.mu.Unlock()

	a.view.SetScreen(ui.ScreenLanding)
	a.view.FlashStatus("")
	a.syncAdmin()
}

func (a *App) OnToggleAdmin() {
	a.mu.Lock()
	a.adminVisible = !a.adminVisible
	visible := a.adminVisible
	a.mu.Unlock()

	a.logger.Info("admin.toggle", map[string]any{"visible": visible})
	a.syncAdmin()
}

func (a *App) OnSubmitPin(candidate string) {
	if candidate != a.cfg.AdminPin {
		a.logger.Info("admin.unlock_failed", map[string]any{"session": a.sessionID})
		a.view.FlashStatus("Wrong pin")
		a.syncAdmin()
		return
	}

	a.mu.Lock()
	a.adminUnlocked = true
	a.mu.Unlock()

	a.logger.Info("admin.unlocked", map[string]any{"session": a.sessionID})
	a.view.FlashStatus("")
	a.syncAdmin()
}

func (a *App) OnClearResponses(confirmed bool) {
	if !a.log.Clear(confirmed) {
		a.syncAdmin()
		return
	}
	a.logger.Info("responses.cleared", map[string]any{"session": a.sessionID})
	a.view.FlashStatus("Responses cleared")
	a.syncAdmin()
}

func (a *App) OnQuit() {
	a.logger.Info("app.quit", map[string]any{"session": a.sessionID})
	a.view.Stop()
}

func (a *App) syncAdmin() {
	a.mu.Lock()
	state := ui.AdminState{
		Visible:  a.adminVisible,
		Unlocked: a.adminUnlocked,
	}
	a.mu.Unlock()

	if state.Visible && state.Unlocked {
		recs := a.log.All()
		rows := make([]ui.ResponseRow, 0, len(recs))
		for _, rec := range recs {
			rows = append(rows, ui.ResponseRow{
				When:     rec.Time,
				Relative: humanize.Time(rec.When()),
				Name:     rec.Name,
				Answer:   string(rec.Answer),
				Screen:   rec.PageAt,
			})
		}
		state.Responses = rows
	}
	a.view.SetAdminState(state)
}
