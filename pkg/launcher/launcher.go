// Package launcher starts package manager commands as detached children and
// reaps them in the background. Callers never wait for a child to finish.
package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/fsutil"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/panjf2000/ants/v2"
	"github.com/shirou/gopsutil/v3/process"
)

// Defaults for Options.
const (
	DefaultPoolSize = 4
	DefaultTailSize = 4096
)

// Exit describes how a launched command ended. Err is set when the command
// could not be started or waited on.
type Exit struct {
	ID       string
	PID      int
	ExitCode int
	Err      error
	Output   string
	ExitedAt time.Time
}

// Process is a launched command. StartErr is set when spawning failed; the
// failure has already been reported through OnExit.
type Process struct {
	ID        string
	PID       int
	StartedAt time.Time
	StartErr  error
}

// Options configures a Launcher.
type Options struct {
	// PoolSize bounds the number of children waited on at once.
	PoolSize int
	// TailSize is how much trailing output is read back into Exit.Output.
	TailSize int
	// LogDir receives the full output of each command as <id>.log when set.
	// Without it output goes to a temporary file.
	LogDir string
	// OnExit is called once per launched command, from a pool goroutine
	// or, for spawn failures, from Launch itself.
	OnExit func(Exit)
}

// Launcher starts commands and waits for them on a goroutine pool.
type Launcher struct {
	runner Runner
	pool   *ants.Pool
	opts   Options
	closed atomic.Bool
	now    func() time.Time
}

// New creates a launcher. The pool never blocks the caller: when every worker
// is busy Launch reports errors.ErrLauncherBusy.
func New(runner Runner, opts Options) (*Launcher, error) {
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.TailSize <= 0 {
		opts.TailSize = DefaultTailSize
	}
	pool, err := ants.NewPool(opts.PoolSize, ants.WithNonblocking(true), ants.WithPanicHandler(func(p interface{}) {
		logger.Error("Launcher worker panicked", logger.Fields{"panic": fmt.Sprint(p)})
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create launcher pool")
	}
	return &Launcher{runner: runner, pool: pool, opts: opts, now: time.Now}, nil
}

// Launch starts plan and returns without waiting for it. The returned error
// is non-nil only when the plan is unusable or the launcher cannot take
// more work. Spawn failures are returned in Process.StartErr.
func (l *Launcher) Launch(ctx context.Context, id string, plan *model.CommandPlan) (*Process, error) {
	if plan == nil || plan.Executable == "" {
		return nil, fmt.Errorf("%w: empty command", errors.ErrLaunchFailure)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.closed.Load() || l.pool.IsClosed() {
		return nil, errors.ErrLauncherClosed
	}
	if l.pool.Free() == 0 {
		return nil, fmt.Errorf("%w: %d already running", errors.ErrLauncherBusy, l.pool.Running())
	}

	output, outputPath, temporary := l.openOutput(id)
	finish := func(exit Exit) {
		exit.ID = id
		exit.ExitedAt = l.now()
		if outputPath != "" {
			exit.Output = readTail(outputPath, l.opts.TailSize)
			if temporary {
				_ = os.Remove(outputPath)
			}
		}
		if l.opts.OnExit != nil {
			l.opts.OnExit(exit)
		}
	}

	proc := &Process{ID: id, StartedAt: l.now()}
	child, err := l.runner.Start(plan, output)
	if output != nil {
		// The child holds its own descriptor.
		_ = output.Close()
	}
	if err != nil {
		proc.StartErr = fmt.Errorf("%w: %s: %w", errors.ErrLaunchFailure, plan.String(), err)
		logger.Error("Failed to start command", logger.Fields{
			"operation": id,
			"command":   plan.String(),
			"error":     err.Error(),
		})
		finish(Exit{ExitCode: -1, Err: proc.StartErr})
		return proc, nil
	}
	proc.PID = child.Pid()

	logger.Info("Started command", logger.Fields{
		"operation": id,
		"command":   plan.String(),
		"dir":       plan.Dir,
		"pid":       proc.PID,
	})

	wait := func() {
		code, err := child.Wait()
		fields := logger.Fields{"operation": id, "pid": proc.PID, "exit_code": code}
		if err != nil {
			fields["error"] = err.Error()
			logger.Warn("Command ended abnormally", fields)
		} else {
			logger.Debug("Command exited", fields)
		}
		finish(Exit{PID: proc.PID, ExitCode: code, Err: err})
	}
	if err := l.pool.Submit(wait); err != nil {
		// The child is already running and must still be reaped.
		logger.Debug("Launcher pool unavailable, reaping on a plain goroutine", logger.Fields{"operation": id, "error": err.Error()})
		go wait()
	}
	return proc, nil
}

// openOutput opens the file the child writes to: <LogDir>/<id>.log, or a
// temporary file removed once the child exits. The child never writes
// through a pipe owned by this process, so it survives this process exiting.
func (l *Launcher) openOutput(id string) (f *os.File, path string, temporary bool) {
	if l.opts.LogDir != "" && id != "" {
		if err := fsutil.EnsureDir(l.opts.LogDir); err != nil {
			logger.Warn("Cannot create operation log directory", logger.Fields{"dir": l.opts.LogDir, "error": err.Error()})
		} else {
			path = filepath.Join(l.opts.LogDir, id+".log")
			f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fsutil.FileModeSecure)
			if err == nil {
				return f, path, false
			}
			logger.Warn("Cannot open operation log", logger.Fields{"path": path, "error": err.Error()})
		}
	}
	f, err := os.CreateTemp("", "kitctl-*.log")
	if err != nil {
		logger.Warn("Cannot capture command output", logger.Fields{"operation": id, "error": err.Error()})
		return nil, "", false
	}
	return f, f.Name(), true
}

// Running returns the number of children currently being waited on.
func (l *Launcher) Running() int {
	return l.pool.Running()
}

// Close stops accepting launches. Children already running keep running.
func (l *Launcher) Close() {
	if l.closed.Swap(true) {
		return
	}
	l.pool.Release()
}

// Alive reports whether a process with pid exists.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}
