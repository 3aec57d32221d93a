//go:build unix

package executor

import (
	"os/exec"
	"syscall"
)

// isolate runs the command in its own process group so cancellation also
// reaches the processes it spawned
func isolate(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		return syscall.Kill(-c.Process.Pid, syscall.SIGKILL)
	}
}
