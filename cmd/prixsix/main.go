package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/prix-six/internal/app"
	"github.com/riskibarqy/prix-six/internal/config"
	"github.com/riskibarqy/prix-six/internal/platform/logging"
	"github.com/riskibarqy/prix-six/internal/usecase"
)

var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("build container", "error", err)
		os.Exit(1)
	}
	defer func() { _ = container.Close(context.Background()) }()

	err = run(ctx, os.Args[1:], container, os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		printUsage(os.Stderr)
		os.Exit(2)
	default:
		logger.Error("command failed", "command", strings.Join(os.Args[1:], " "), "error", err)
		os.Exit(1)
	}
}

// run executes one command and writes its JSON result to out. A reconciliation
// report whose audit write failed is still printed before the error is returned.
func run(ctx context.Context, args []string, container *app.Container, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "reconcile":
		report, err := container.Reconciliation.Run(ctx)
		if err != nil && !errors.Is(err, usecase.ErrReportNotPersisted) {
			return err
		}
		if writeErr := writeJSON(out, report); writeErr != nil {
			return writeErr
		}
		return err
	case "score":
		eventID, err := eventArg(args)
		if err != nil {
			return err
		}
		result, err := container.Scoring.ScoreEvent(ctx, eventID)
		if err != nil {
			return err
		}
		return writeJSON(out, result)
	case "rescore":
		eventID, err := eventArg(args)
		if err != nil {
			return err
		}
		result, err := container.Scoring.RescoreEvent(ctx, eventID)
		if err != nil {
			return err
		}
		return writeJSON(out, result)
	case "standings":
		standings, err := container.Scoring.Standings(ctx)
		if err != nil {
			return err
		}
		return writeJSON(out, standings)
	default:
		return errUsage
	}
}

func eventArg(args []string) (string, error) {
	if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
		return "", fmt.Errorf("%w: %s requires an event id", errUsage, args[0])
	}
	return strings.TrimSpace(strings.Join(args[1:], " ")), nil
}

func writeJSON(out io.Writer, payload any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	raw = append(raw, '\n')
	_, err = out.Write(raw)
	return err
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <reconcile|score|rescore|standings> [eventId]\n", name)
	fmt.Fprintln(w, "examples:")
	fmt.Fprintf(w, "  %s reconcile\n", name)
	fmt.Fprintf(w, "  %s score Australian-Grand-Prix\n", name)
	fmt.Fprintf(w, "  %s rescore \"Chinese Grand Prix - Sprint\"\n", name)
	fmt.Fprintf(w, "  %s standings\n", name)
}
