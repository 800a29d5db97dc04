// Package prompt provides line-oriented input collection for the set and
// create commands.
//
// A LineBuffer reconciles pasted or piped multi-line input with one-at-a-time
// line requests: lines that arrive before they are asked for are held in
// delivery order, and a request issued before the next line stands until the
// line arrives. There is at most one outstanding request at any time.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/Nordstrom/sekr8s/pkg/errors"
)

// result is one delivery from the line source: a line, or a read error.
type result struct {
	line string
	err  error
}

// LineBuffer owns a line source for the duration of one command invocation.
// Callers must Close it on every exit path; otherwise the source goroutine
// keeps waiting for terminal input.
type LineBuffer struct {
	out         io.Writer
	interactive bool

	lines chan result
	done  chan struct{}

	// pending guards the one-outstanding-request contract; it is atomic so
	// a misbehaving concurrent caller fails cleanly instead of racing.
	pending atomic.Bool
	closed  atomic.Bool
}

// Option configures a LineBuffer.
type Option func(*LineBuffer)

// WithInteractive overrides terminal auto-detection. Used by tests and by
// callers that already know whether stdin is a TTY.
func WithInteractive(v bool) Option {
	return func(b *LineBuffer) {
		b.interactive = v
	}
}

// New creates a LineBuffer reading from in and writing prompts to out.
// When in is a terminal, prompts are displayed; for piped or redirected
// input they are suppressed.
func New(in io.Reader, out io.Writer, opts ...Option) *LineBuffer {
	b := &LineBuffer{
		out:   out,
		lines: make(chan result),
		done:  make(chan struct{}),
	}

	if f, ok := in.(*os.File); ok {
		b.interactive = term.IsTerminal(int(f.Fd()))
	}

	for _, opt := range opts {
		opt(b)
	}

	go b.read(in)

	return b
}

// read scans newline-terminated lines from in and offers them to RequestLine.
// It exits once the input ends, a read fails, or the buffer is closed.
func (b *LineBuffer) read(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case b.lines <- result{line: scanner.Text()}:
		case <-b.done:
			return
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case b.lines <- result{err: err}:
		case <-b.done:
		}
	}

	close(b.lines)
}

// RequestLine returns the next available line, waiting for it if none has
// arrived yet. promptText is shown only when the source is interactive.
//
// Only one request may be outstanding; a second concurrent call fails with a
// usage error and leaves the first request untouched. End of input while
// waiting fails the request rather than hanging.
func (b *LineBuffer) RequestLine(ctx context.Context, promptText string) (string, error) {
	if b.closed.Load() {
		return "", errors.NewUsageError("line buffer is closed", nil)
	}
	if !b.pending.CompareAndSwap(false, true) {
		return "", errors.NewUsageError("a line request is already outstanding", nil)
	}
	defer b.pending.Store(false)

	if b.interactive && promptText != "" {
		fmt.Fprint(b.out, promptText)
	}

	select {
	case res, ok := <-b.lines:
		if !ok {
			return "", errors.NewInvalidArgumentError("input ended before a line was available", io.ErrUnexpectedEOF)
		}
		if res.err != nil {
			return "", errors.NewInternalError("reading input", res.err)
		}
		return res.line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close releases the line source. Safe to call more than once; calls after
// the first are no-ops. The source goroutine exits on its next delivery
// attempt, so a reader blocked on an idle terminal is reaped at process exit.
func (b *LineBuffer) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(b.done)
	return nil
}
