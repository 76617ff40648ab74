//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own process group so it survives the console
// being restarted by its supervisor.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
