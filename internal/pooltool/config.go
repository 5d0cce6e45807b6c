// Package pooltool implements the pool-tool command: a small HTTP client
// for poking a running pool service from the terminal.
package pooltool

import "time"

// Config carries the command-line options for a pool-tool run.
type Config struct {
	BaseURL  string
	AdminKey string
	Timeout  time.Duration

	// Action arguments.
	Name       string
	Pick       string
	Week       int
	Tournament string
	Enabled    bool
}
