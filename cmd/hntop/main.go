package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/glabrego/hntop/internal/app"
	"github.com/glabrego/hntop/internal/config"
	"github.com/glabrego/hntop/internal/hn"
	"github.com/glabrego/hntop/internal/logging"
	"github.com/glabrego/hntop/internal/storage"
	"github.com/glabrego/hntop/internal/tui"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file (%v), logging disabled\n", err)
		logger = logging.Discard()
	} else {
		defer logCloser.Close()
	}

	var repo app.Repository
	if store := openStore(cfg.DBPath, logger); store != nil {
		defer store.Close()
		repo = store
	}

	client := hn.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})
	service := app.NewService(client, repo, app.Options{
		TopLimit:          cfg.TopLimit,
		Workers:           cfg.FetchWorkers,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})

	model := tui.NewModel(service, tui.Options{
		PollInterval: cfg.PollInterval,
		Logger:       logger,
	})

	prefCtx, prefCancel := context.WithTimeout(context.Background(), 5*time.Second)
	prefs, err := service.LoadUIPreferences(prefCtx)
	prefCancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load UI preferences (%v), using defaults\n", err)
		logger.Warn("load preferences failed", "err", err)
	}
	model.ApplyPreferences(prefs)
	if repo != nil {
		model.SetPreferencesSaver(func(p app.UIPreferences) error {
			saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer saveCancel()
			return service.SaveUIPreferences(saveCtx, p)
		})
	}

	logger.Info("starting", "top_limit", cfg.TopLimit, "workers", cfg.FetchWorkers, "api", cfg.APIBaseURL)
	if err := run(model, os.Stdin, os.Stdout, logger); err != nil {
		reportRunError(os.Stderr, err)
	}
}

var errNotTerminal = errors.New("stdin and stdout must be a terminal")

// run drives the TUI on the given terminal. It refuses to start when either
// end is not a TTY.
func run(model tea.Model, in, out *os.File, logger *log.Logger) error {
	if !isTerminal(in) || !isTerminal(out) {
		logger.Error("terminal setup failed", "err", errNotTerminal)
		return errNotTerminal
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	if _, err := program.Run(); err != nil {
		logger.Error("tui error", "err", err)
		return err
	}
	return nil
}

// reportRunError prints a failure after the TUI has ended. The process still
// exits 0.
func reportRunError(w io.Writer, err error) {
	if errors.Is(err, errNotTerminal) {
		fmt.Fprintf(w, "Failed to enable raw mode: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Application error: %v\n", err)
}

// openStore opens the preference database. Any failure is reported and the
// app runs without persistence.
func openStore(path string, logger *log.Logger) *storage.Repository {
	if path == "" {
		return nil
	}
	repo, err := storage.NewRepository(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: storage init error (%v), preferences will not be saved\n", err)
		logger.Warn("storage init failed", "path", path, "err", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: storage schema error (%v), preferences will not be saved\n", err)
		logger.Warn("storage schema failed", "path", path, "err", err)
		repo.Close()
		return nil
	}
	if err := repo.CheckWritable(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: storage write check failed (%v). Verify HNTOP_DB_PATH is writable: %s\n", err, path)
		logger.Warn("storage not writable", "path", path, "err", err)
		repo.Close()
		return nil
	}
	return repo
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
