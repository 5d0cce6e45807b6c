package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/fairway/pickem/internal/pooltool"
)

const defaultTimeout = 10 * time.Second

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		adminKey   = flag.String("admin-key", os.Getenv("PICKEM_ADMIN_KEY"), "Admin key for admin actions")
		action     = flag.String("action", "status", "Action to perform")
		name       = flag.String("name", "", "Participant name for submit")
		pick       = flag.String("pick", "", "Golfer pick for submit")
		week       = flag.Int("week", 0, "Week number for picks, viewall and setweek")
		tournament = flag.String("tournament", "", "Tournament name for setweek")
		enabled    = flag.Bool("enabled", true, "Enabled flag for setautoreveal")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		pooltool.ShowHelp()
		return
	}

	cfg := &pooltool.Config{
		BaseURL:    *baseURL,
		AdminKey:   *adminKey,
		Timeout:    *timeout,
		Name:       *name,
		Pick:       *pick,
		Week:       *week,
		Tournament: *tournament,
		Enabled:    *enabled,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	if err := pooltool.Run(ctx, cfg, *action); err != nil {
		os.Stderr.WriteString("pool-tool: " + err.Error() + "\n")
		os.Exit(1)
	}
}
