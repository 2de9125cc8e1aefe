// Package exec runs the external commands used to talk to the
// management controller.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner runs a command line and returns its output
// without the trailing newline.
type Runner interface {
	// Command runs cmdString directly, arguments are split on white spaces.
	Command(ctx context.Context, cmdString string) (string, error)

	// Pipe runs cmdString through bash, pipes and redirections are allowed.
	Pipe(ctx context.Context, cmdString string) (string, error)
}

// Local runs commands on this host.
type Local struct{}

func (Local) Command(ctx context.Context, cmdString string) (string, error) {
	args := strings.Fields(cmdString)
	if len(args) == 0 {
		return "", errors.New("wrong cmd: " + cmdString)
	}

	for i, arg := range args {
		arg = strings.TrimPrefix(arg, "'")
		arg = strings.TrimSuffix(arg, "'")
		args[i] = arg
	}

	return run(exec.CommandContext(ctx, args[0], args[1:]...))
}

func (Local) Pipe(ctx context.Context, cmdString string) (string, error) {
	return run(exec.CommandContext(ctx, "bash", "-c", cmdString))
}

func run(cmd *exec.Cmd) (string, error) {
	// If Env is nil, the new process uses the current process's environment.
	cmd.Env = os.Environ()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	var stout bytes.Buffer
	cmd.Stdout = &stout

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("%v: %s", err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSuffix(stout.String(), "\n")
	return out, nil
}
