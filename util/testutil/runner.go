// Package testutil provides a scripted util.Runner for driver tests
package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shamanec/GADS-emulator-manager/util"
)

type response struct {
	output []byte
	err    error
}

// FakeRunner returns scripted outputs keyed by the full command line
// and records every command it was asked to run
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]response
	prefixes  map[string]response
	Commands  []string
	Started   []string
	Stopped   []string
}

var _ util.Runner = (*FakeRunner)(nil)

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]response),
		prefixes:  make(map[string]response),
	}
}

// OnPrefix scripts the result for every command line starting with prefix,
// used when arguments contain generated file names
func (r *FakeRunner) OnPrefix(prefix string, output string, err error) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes[prefix] = response{output: []byte(output), err: err}
	return r
}

func (r *FakeRunner) lookup(command string) (response, bool) {
	if resp, ok := r.responses[command]; ok {
		return resp, true
	}
	for prefix, resp := range r.prefixes {
		if strings.HasPrefix(command, prefix) {
			return resp, true
		}
	}
	return response{}, false
}

// On scripts the result for a command line, e.g. "adb devices"
func (r *FakeRunner) On(command string, output string, err error) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[command] = response{output: []byte(output), err: err}
	return r
}

func (r *FakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	command := util.CommandString(name, args...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = append(r.Commands, command)

	resp, ok := r.lookup(command)
	if !ok {
		return nil, fmt.Errorf("unexpected command `%s`", command)
	}
	return resp.output, resp.err
}

func (r *FakeRunner) Start(ctx context.Context, out io.WriteCloser, name string, args ...string) error {
	command := util.CommandString(name, args...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Started = append(r.Started, command)

	if out != nil {
		defer out.Close()
	}
	if resp, ok := r.lookup(command); ok {
		if out != nil && len(resp.output) > 0 {
			out.Write(resp.output)
		}
		return resp.err
	}
	return nil
}

// Spawn behaves like Start, the returned process runs until it is stopped
func (r *FakeRunner) Spawn(out io.WriteCloser, name string, args ...string) (util.Process, error) {
	if err := r.Start(context.Background(), out, name, args...); err != nil {
		return nil, err
	}
	return &FakeProcess{runner: r, command: util.CommandString(name, args...), done: make(chan struct{})}, nil
}

type FakeProcess struct {
	runner  *FakeRunner
	command string
	once    sync.Once
	done    chan struct{}
}

func (p *FakeProcess) Stop() {
	p.once.Do(func() {
		p.runner.mu.Lock()
		p.runner.Stopped = append(p.runner.Stopped, p.command)
		p.runner.mu.Unlock()
		close(p.done)
	})
}

// Exit ends the process without it being stopped
func (p *FakeProcess) Exit() {
	p.once.Do(func() { close(p.done) })
}

func (p *FakeProcess) Done() <-chan struct{} {
	return p.done
}

// Ran reports whether a command starting with prefix was executed
func (r *FakeRunner) Ran(prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, command := range append(append([]string(nil), r.Commands...), r.Started...) {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}
