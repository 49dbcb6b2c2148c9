package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
	"github.com/PolarWolf314/vault2vault/internal/ui"
	"github.com/PolarWolf314/vault2vault/internal/workflows"
)

// promptConfirmer asks yes/no questions on a line-oriented reader.
// An empty answer means yes.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer

	// pending holds a read left running by a cancelled readLine. The
	// reader cannot be interrupted, so the next call waits on it instead of
	// starting a second read on the same buffer.
	pending chan lineReply
}

type lineReply struct {
	line string
	err  error
}

var _ workflows.Confirmer = (*promptConfirmer)(nil)

func (p *promptConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s [Y/n]: ", question)

		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, ui.Warning.Sprint("!")+" Please answer y or n")
	}
}

// readLine returns the next line, or ErrInterrupted when ctx is cancelled
// or the input is closed. After a cancellation the read goroutine stays
// blocked until a line arrives, and that line answers the next call.
func (p *promptConfirmer) readLine(ctx context.Context) (string, error) {
	done := p.pending
	p.pending = nil
	if done == nil {
		done = make(chan lineReply, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			done <- lineReply{line, err}
		}()
	}

	select {
	case <-ctx.Done():
		p.pending = done
		fmt.Fprintln(p.out)
		return "", fmt.Errorf("%w: %v", kerrors.ErrInterrupted, ctx.Err())
	case r := <-done:
		if r.err == nil {
			return r.line, nil
		}
		if errors.Is(r.err, io.EOF) {
			if r.line != "" {
				return r.line, nil
			}
			fmt.Fprintln(p.out)
			return "", fmt.Errorf("%w: no answer on stdin", kerrors.ErrInterrupted)
		}
		return "", fmt.Errorf("failed to read response: %w", r.err)
	}
}
