package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	sh "github.com/codeskyblue/go-sh"
)

// Runner executes the native simulator/emulator tooling
type Runner interface {
	// Output runs the command to completion and returns its stdout
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start launches a long running process without waiting for it,
	// its combined output is copied to out when out is not nil
	Start(ctx context.Context, out io.WriteCloser, name string, args ...string) error
	// Spawn is Start for processes the caller stops itself
	Spawn(out io.WriteCloser, name string, args ...string) (Process, error)
}

// Process is a spawned command
type Process interface {
	// Stop kills the process, calling it after the process exited does nothing
	Stop()
	// Done is closed once the process exited
	Done() <-chan struct{}
}

// ShellRunner is the go-sh backed Runner
type ShellRunner struct {
	DefaultTimeout time.Duration
}

func NewShellRunner(timeout time.Duration) *ShellRunner {
	return &ShellRunner{DefaultTimeout: timeout}
}

func (r *ShellRunner) session(ctx context.Context) *sh.Session {
	session := sh.NewSession()
	session.ShowCMD = false

	timeout := r.DefaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout > 0 {
		session.SetTimeout(timeout)
	}
	return session
}

func (r *ShellRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	session := r.session(ctx)
	session.Stderr = &stderr

	output, err := session.Command(name, toInterfaces(args)...).Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return output, fmt.Errorf("`%s` failed - %w: %s", CommandString(name, args...), err, msg)
		}
		return output, fmt.Errorf("`%s` failed - %w", CommandString(name, args...), err)
	}
	return output, nil
}

func (r *ShellRunner) Start(ctx context.Context, out io.WriteCloser, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.Spawn(out, name, args...)
	return err
}

// Detached processes outlive the request, no timeout
func (r *ShellRunner) Spawn(out io.WriteCloser, name string, args ...string) (Process, error) {
	session := sh.NewSession()
	session.ShowCMD = false
	session.Stdout = io.Discard
	session.Stderr = io.Discard
	if out != nil {
		session.Stdout = out
		session.Stderr = out
	}

	err := session.Command(name, toInterfaces(args)...).Start()
	if err != nil {
		if out != nil {
			out.Close()
		}
		return nil, fmt.Errorf("could not start `%s` - %w", CommandString(name, args...), err)
	}

	process := &shellProcess{session: session, done: make(chan struct{})}
	go func() {
		session.Wait()
		if out != nil {
			out.Close()
		}
		close(process.done)
	}()

	return process, nil
}

type shellProcess struct {
	session *sh.Session
	done    chan struct{}
}

func (p *shellProcess) Stop() {
	select {
	case <-p.done:
	default:
		p.session.Kill(os.Kill)
	}
}

func (p *shellProcess) Done() <-chan struct{} {
	return p.done
}

// CommandString renders a command for logs and error messages
func CommandString(name string, args ...string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func toInterfaces(args []string) []interface{} {
	values := make([]interface{}, len(args))
	for i, arg := range args {
		values[i] = arg
	}
	return values
}
