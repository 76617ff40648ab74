//go:generate mockgen -destination=mocks/launcher.go . Runner,Child
package launcher

import (
	"os"

	"github.com/glorpus-work/kitctl/pkg/model"
)

// Runner starts command plans as child processes.
type Runner interface {
	// Start spawns plan with stdin closed and stdout/stderr written to
	// output, which the child inherits. A nil output discards them.
	// It must not wait for the child to exit.
	Start(plan *model.CommandPlan, output *os.File) (Child, error)
}

// Child is a started process.
type Child interface {
	Pid() int
	// Wait blocks until the process exits and returns its exit code.
	Wait() (int, error)
}
