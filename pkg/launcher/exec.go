package launcher

import (
	"errors"
	"os"
	"os/exec"

	"github.com/glorpus-work/kitctl/pkg/model"
)

// ExecRunner starts plans with os/exec.
type ExecRunner struct {
	// Env is appended to the inherited environment.
	Env []string
}

// Start implements Runner. output is handed to the child as its own file
// descriptor, so the child keeps writing after this process exits.
func (r ExecRunner) Start(plan *model.CommandPlan, output *os.File) (Child, error) {
	cmd := exec.Command(plan.Executable, plan.Args...)
	cmd.Dir = plan.Dir
	cmd.Stdin = nil
	if output != nil {
		cmd.Stdout = output
		cmd.Stderr = output
	}
	cmd.Env = append(os.Environ(), r.Env...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execChild{cmd: cmd}, nil
}

type execChild struct {
	cmd *exec.Cmd
}

func (c *execChild) Pid() int {
	return c.cmd.Process.Pid
}

func (c *execChild) Wait() (int, error) {
	err := c.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
