package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"deal-engine/client"
	"deal-engine/config"
	"deal-engine/domain"
	"deal-engine/logger"
)

const watchRequestTimeout = 10 * time.Second

// runWatch reads one worksheet input per line from in and prints the latest
// result to out. Lines arriving faster than the debounce delay collapse into
// one request.
func runWatch(ctx context.Context, cfg *config.Config, strategy domain.Strategy, in io.Reader, out io.Writer, log logger.Logger) error {
	if !strategy.Valid() {
		return &domain.ValidationError{Field: "strategy", Message: fmt.Sprintf("unknown strategy %q", strategy)}
	}
	if cfg.Recalc.Endpoint == "" {
		return errors.New("recalc.endpoint is not configured")
	}

	remote := client.NewClient(cfg.Recalc.Endpoint, watchRequestTimeout)
	session := client.NewLiveSession(ctx, remote, strategy, config.GetDuration(cfg.Recalc.Debounce), func(u client.Update) {
		if u.Err != nil {
			fmt.Fprintf(out, "error: %v\n", u.Err)
			return
		}
		fmt.Fprintf(out, "%s\n", u.Result)
	}, log)
	defer session.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var input json.RawMessage
		if err := json.Unmarshal(line, &input); err != nil {
			log.Warn("skipping malformed input line", map[string]interface{}{"error": err.Error()})
			continue
		}
		session.Change(append(json.RawMessage(nil), input...))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	session.Flush()
	return nil
}

func watchMain(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: deal-engine watch <strategy>")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	log := logger.NewStructured(cfg.Logging.Level, "console")
	defer log.Sync()

	if err := runWatch(context.Background(), cfg, domain.Strategy(args[0]), os.Stdin, os.Stdout, log); err != nil {
		log.WithError(err).Error("watch failed", nil)
		return 1
	}
	return 0
}
