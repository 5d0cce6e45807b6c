package pooltool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Run executes a single action against the target service and prints the
// response as indented JSON.
func Run(ctx context.Context, cfg *Config, action string) error {
	client := newClient(cfg.BaseURL, cfg.AdminKey, cfg.Timeout)

	var (
		body   []byte
		status int
		err    error
	)

	switch action {
	case "status":
		body, status, err = client.Get(ctx, "/status", false)
	case "weeks":
		body, status, err = client.Get(ctx, "/weeks", false)
	case "picks":
		path := "/picks"
		if cfg.Week > 0 {
			path = fmt.Sprintf("/picks?week=%d", cfg.Week)
		}
		body, status, err = client.Get(ctx, path, cfg.AdminKey != "")
	case "submit":
		body, status, err = client.Post(ctx, "/submit", map[string]string{
			"name":       cfg.Name,
			"golferPick": cfg.Pick,
		}, false)
	case "reveal":
		body, status, err = client.Post(ctx, "/admin", map[string]any{"action": "reveal"}, true)
	case "advance":
		body, status, err = client.Post(ctx, "/admin", map[string]any{"action": "advanceWeek"}, true)
	case "viewall":
		body, status, err = client.Post(ctx, "/admin", map[string]any{
			"action":     "viewAll",
			"weekNumber": cfg.Week,
		}, true)
	case "setweek":
		body, status, err = client.Post(ctx, "/admin", map[string]any{
			"action":     "setWeek",
			"weekNumber": cfg.Week,
			"tournament": cfg.Tournament,
		}, true)
	case "setautoreveal":
		body, status, err = client.Post(ctx, "/admin", map[string]any{
			"action":  "setAutoReveal",
			"enabled": cfg.Enabled,
		}, true)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "HTTP %d\n", status)
	return printJSON(body)
}

func printJSON(data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		// Not JSON; print as-is.
		_, werr := os.Stdout.Write(data)
		return werr
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(os.Stdout)
	return err
}

// ShowHelp prints usage for the tool.
func ShowHelp() {
	fmt.Print(`pool-tool - command-line client for the pick'em pool service

Usage:
  pool-tool -action <action> [flags]

Actions:
  status         Show the current week status
  weeks          List the season week index
  picks          Show picks (-week N; admin key bypasses the veil)
  submit         Submit a pick (-name, -pick)
  reveal         Force-reveal the current week (admin)
  advance        Advance to the next week (admin)
  viewall        Show hidden picks for a week (admin, -week N)
  setweek        Repoint the pool (admin, -week N, -tournament NAME)
  setautoreveal  Toggle the scheduled reveal (admin, -enabled)

Flags:
  -url        Base URL of the service (default http://localhost:8080)
  -admin-key  Admin key for admin actions
  -timeout    HTTP request timeout (default 10s)
`)
}
