package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the lifecycle action requested for a package.
type Mode string

const (
	ModeInstall   Mode = "install"
	ModeUninstall Mode = "uninstall"
	ModeUpdate    Mode = "update"
	ModeStatus    Mode = "status"
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeInstall, ModeUninstall, ModeUpdate, ModeStatus:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Mutates reports whether the mode changes the dependency tree.
func (m Mode) Mutates() bool {
	return m == ModeInstall || m == ModeUninstall || m == ModeUpdate
}

// OperationRequest is one user action against a package.
type OperationRequest struct {
	Mode    Mode   `json:"mode"`
	Package string `json:"package"`
	Version string `json:"version,omitempty"`
}

// CommandPlan is a validated command line ready to run in Dir.
type CommandPlan struct {
	Mode       Mode     `json:"mode"`
	Package    string   `json:"package"`
	Version    string   `json:"version,omitempty"`
	Executable string   `json:"executable"`
	Args       []string `json:"args"`
	Dir        string   `json:"dir"`
}

// String renders the command line as it would be typed in a shell.
func (p *CommandPlan) String() string {
	if p == nil {
		return ""
	}
	return strings.Join(append([]string{p.Executable}, p.Args...), " ")
}

// Status is the observable state of a launched operation.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// StatusResult is the answer to a single status poll.
type StatusResult struct {
	Status    Status `json:"status"`
	Mode      Mode   `json:"mode"`
	Package   string `json:"package"`
	Version   string `json:"version,omitempty"`
	Message   string `json:"message,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Running   *bool  `json:"running,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// Operation is the journal record of a launched command.
type Operation struct {
	ID          string    `json:"id"`
	Mode        Mode      `json:"mode"`
	Package     string    `json:"package"`
	Version     string    `json:"version,omitempty"`
	Command     string    `json:"command"`
	Dir         string    `json:"dir"`
	StartedAt   time.Time `json:"started_at"`
	PID         int       `json:"pid,omitempty"`
	LaunchError string    `json:"launch_error,omitempty"`
	ExitCode    *int      `json:"exit_code,omitempty"`
	ExitedAt    time.Time `json:"exited_at,omitempty"`
	OutputTail  string    `json:"output_tail,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	HooksRun    bool      `json:"hooks_run,omitempty"`
}

// Completed reports whether a status poll already observed completion.
func (o *Operation) Completed() bool {
	return o != nil && !o.CompletedAt.IsZero()
}
