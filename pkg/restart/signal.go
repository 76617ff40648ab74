// Package restart tracks whether the console has restarted since a dependency
// change was launched. Once set, the signal stays set for the life of the process.
package restart

import (
	"os"
	"strings"
	"sync/atomic"
)

// EnvRestarted is set to a truthy value by supervisors that re-exec the
// console after a dependency change.
const EnvRestarted = "KITCTL_RESTARTED"

// Signal is a one-way flag. The zero value is unset.
type Signal struct {
	set atomic.Bool
}

// Set marks the signal. It is idempotent.
func (s *Signal) Set() {
	s.set.Store(true)
}

// Restarted reports whether Set has been called.
func (s *Signal) Restarted() bool {
	return s.set.Load()
}

// Process is the process-wide restart signal.
var Process = &Signal{}

// SetRestarted sets the process-wide signal.
func SetRestarted() {
	Process.Set()
}

// HasRestarted reads the process-wide signal.
func HasRestarted() bool {
	return Process.Restarted()
}

// FromEnv sets s when the environment says the process was restarted.
func FromEnv(s *Signal, getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	switch strings.ToLower(strings.TrimSpace(getenv(EnvRestarted))) {
	case "1", "true", "yes":
		s.Set()
		return true
	}
	return false
}
