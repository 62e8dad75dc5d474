package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/coinworks/adwidget/internal/adclient"
	"github.com/coinworks/adwidget/internal/domain"
	"github.com/coinworks/adwidget/internal/infra"
	"github.com/coinworks/adwidget/internal/session"
	"github.com/coinworks/adwidget/internal/telemetry"
	"github.com/coinworks/adwidget/internal/tui"
	"github.com/coinworks/adwidget/internal/widget"
)

func main() {
	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile("adwidget.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("adwidget failed", "error", err)
		fmt.Fprintln(os.Stderr, "adwidget:", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local .env is optional.
	godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	sess, err := session.NewFileStore(cfg.SessionFile, logger)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	ads := adclient.New(cfg.APIBaseURL, sess, cfg.HTTPTimeout, logger)

	sinks := []telemetry.Sink{telemetry.NewHTTPSink(cfg.APIBaseURL, sess, cfg.HTTPTimeout)}
	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	defer producer.Close()
	if producer.Enabled() {
		sinks = append(sinks, telemetry.NewKafkaSink(producer, cfg.KafkaTopic))
	}

	reporter := telemetry.NewReporter(cfg.TelemetryQueueSize, logger, sinks...)
	reporter.Start(ctx)

	var program *tea.Program

	ctrl := widget.New(widget.Options{
		Filters:               domain.Filters{Format: cfg.AdFormat, MediaFormat: cfg.AdMediaFormat},
		Media:                 mediaKind(cfg.AdFormat),
		AdID:                  cfg.AdID,
		ShowRewardProbability: cfg.ShowRewardProbability,
		OpenLink:              openLink(logger),
		Close: func() {
			if program != nil {
				program.Quit()
			}
		},
	}, ads, reporter, sess, logger)

	program = tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run placement: %w", err)
	}

	logger.Info("placement closed")
	return nil
}

func mediaKind(format string) domain.MediaKind {
	switch format {
	case domain.FormatVideo:
		return domain.MediaVideo
	case domain.FormatAudio:
		return domain.MediaAudio
	case domain.FormatImage:
		return domain.MediaImage
	default:
		return domain.MediaNone
	}
}

// openLink opens a URL with the desktop's handler, best effort.
func openLink(logger *slog.Logger) func(string) {
	return func(url string) {
		logger.Info("opening link", "url", url)
		if err := exec.Command("xdg-open", url).Start(); err != nil {
			logger.Warn("open link failed", "url", url, "error", err)
		}
	}
}
