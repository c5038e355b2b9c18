package pipeline

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"flacsmith/internal/logging"
	"flacsmith/internal/services"
)

// StageResult captures the termination of one pipeline stage.
type StageResult struct {
	Command  Command
	ExitCode int
	// Signal is the terminating signal, or 0 when the stage exited normally.
	Signal syscall.Signal
	Stderr []byte
}

// Failed reports whether the stage terminated abnormally.
func (r StageResult) Failed() bool {
	return r.ExitCode != 0 || r.Signal != 0
}

// BrokenPipe reports whether the stage was killed by SIGPIPE, the usual
// side effect of a downstream consumer exiting early.
func (r StageResult) BrokenPipe() bool {
	return r.Signal == syscall.Signal(unix.SIGPIPE)
}

// Runner executes command chains as OS process pipelines.
type Runner struct {
	logger *slog.Logger
}

// NewRunner constructs a Runner. A nil logger disables logging.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logging.NewComponentLogger(logger, "pipeline")}
}

// Run spawns every command in spec as a process whose standard input is the
// previous stage's standard output, waits for all of them to terminate, and
// returns one StageResult per stage in pipeline order.
//
// The parent closes its copies of each pipe end immediately after handing
// them to the children, so an early downstream exit delivers SIGPIPE to the
// upstream writer instead of letting it block forever. An empty spec is a
// logged no-op, not an error.
func (r *Runner) Run(ctx context.Context, spec Spec) ([]StageResult, error) {
	if len(spec) == 0 {
		r.logger.Warn("no commands to run")
		return nil, nil
	}
	logger := logging.WithContext(ctx, r.logger)
	logger.Debug("starting pipeline", logging.String("pipeline", spec.String()))

	cmds := make([]*exec.Cmd, len(spec))
	stderrs := make([]*bytes.Buffer, len(spec))
	var prevRead *os.File

	fail := func(stage Command, err error) ([]StageResult, error) {
		if prevRead != nil {
			prevRead.Close()
		}
		for _, cmd := range cmds {
			if cmd == nil || cmd.Process == nil {
				continue
			}
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
		return nil, services.Wrap(services.ErrIO, "pipeline", "spawn process", stage.String(), err)
	}

	for i, stage := range spec {
		cmd := exec.CommandContext(ctx, stage.Program, stage.Args...)
		if prevRead != nil {
			cmd.Stdin = prevRead
		}
		stderrs[i] = new(bytes.Buffer)
		cmd.Stderr = stderrs[i]

		var nextRead *os.File
		if i < len(spec)-1 {
			read, write, err := os.Pipe()
			if err != nil {
				return fail(stage, err)
			}
			cmd.Stdout = write
			if err := cmd.Start(); err != nil {
				read.Close()
				write.Close()
				return fail(stage, err)
			}
			write.Close()
			nextRead = read
		} else {
			cmd.Stdout = io.Discard
			if err := cmd.Start(); err != nil {
				return fail(stage, err)
			}
		}
		if prevRead != nil {
			prevRead.Close()
		}
		prevRead = nextRead
		cmds[i] = cmd
	}

	results := make([]StageResult, len(spec))
	for i, cmd := range cmds {
		err := cmd.Wait()
		result := StageResult{
			Command:  spec[i],
			ExitCode: cmd.ProcessState.ExitCode(),
			Stderr:   stderrs[i].Bytes(),
		}
		if status, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			result.Signal = status.Signal()
		}
		if err != nil && result.ExitCode == 0 && result.Signal == 0 {
			// Wait failures other than abnormal termination (e.g. pipe copy
			// errors) still count against the stage.
			result.ExitCode = -1
			result.Stderr = append(result.Stderr, []byte(err.Error())...)
		}
		results[i] = result
	}

	for _, result := range results {
		if result.Failed() {
			logger.Debug(
				"pipeline stage terminated abnormally",
				logging.String("stage", result.Command.String()),
				logging.Int("exit_code", result.ExitCode),
				logging.String("signal", signalName(result.Signal)),
			)
		}
	}

	return results, nil
}

func signalName(sig syscall.Signal) string {
	if sig == 0 {
		return ""
	}
	return unix.SignalName(unix.Signal(sig))
}
