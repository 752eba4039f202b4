package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	clog "github.com/charmbracelet/log"

	"github.com/janambabi/Forgive-Me/internal/app"
)

func main() {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "forgiveme"})

	cfg, err := app.FromEnv()
	if err != nil {
		logger.Fatal("bad environment", "error", err)
	}

	flag.StringVar(&cfg.LogPath, "log", cfg.LogPath, "append JSONL telemetry to this file")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for persisted responses")
	flag.StringVar(&cfg.Store, "store", cfg.Store, "persistence backend: file, sqlite or memory")
	flag.StringVar(&cfg.AdminPin, "pin", cfg.AdminPin, "pin for the admin overlay")
	flag.StringVar(&cfg.Question, "question", cfg.Question, "override the prompt question")
	flag.StringVar(&cfg.PleaPath, "plea", cfg.PleaPath, "markdown file with the apology text")
	flag.StringVar(&cfg.WebhookURL, "webhook", cfg.WebhookURL, "POST each new response to this URL")
	flag.StringVar(&cfg.UI.StyleVariant, "style", cfg.UI.StyleVariant, "ui style: rose_glow, quiet_night or paper_letter")
	flag.StringVar(&cfg.UI.MotionLevel, "motion", cfg.UI.MotionLevel, "animation level: full, reduced or off")
	flag.BoolVar(&cfg.ASCIIOnly, "ascii", cfg.ASCIIOnly, "avoid non-ASCII glyphs")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose ui logging")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Fatal("startup failed", "error", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		logger.Fatal("exited with error", "error", err)
	}
}
