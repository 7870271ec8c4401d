// Package shell runs the external image tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
// Commands run under a PTY when one is available so tools keep their line-buffered output.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor logging tool output to logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs cmd and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) error {
	if cmd.Name == "" {
		return nil
	}

	out := &logWriter{logger: e.logger, prefix: cmd.Name}
	defer out.Close() //nolint:errcheck // flushes the trailing partial line

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // tool names come from press.yaml
	c.Dir = cmd.Dir
	c.Env = os.Environ()

	if err := run(c, out); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()),
			"command", cmd.Name), "exit_code", exitCode)
	}

	return nil
}

// run attaches the command to a PTY when one can be opened and to plain pipes otherwise.
func run(c *exec.Cmd, out io.Writer) error {
	ptmx, tty, err := pty.Open()
	if err != nil {
		c.Stdout = out
		c.Stderr = out
		return c.Run()
	}
	defer ptmx.Close() //nolint:errcheck // best effort

	c.Stdout = tty
	c.Stderr = tty
	startErr := c.Start()
	_ = tty.Close()
	if startErr != nil {
		return startErr
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Reading the master after the child exits ends with EIO on Linux.
		_, _ = io.Copy(out, ptmx)
	}()

	waitErr := c.Wait()
	wg.Wait()

	return waitErr
}

// logWriter splits tool output into lines and logs each one.
type logWriter struct {
	logger ports.Logger
	prefix string
	mu     sync.Mutex
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimRight(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}
	w.logger.Info(w.prefix + ": " + msg)
}
