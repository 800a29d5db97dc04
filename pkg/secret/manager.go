package secret

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Nordstrom/sekr8s/pkg/kubectl"
	"github.com/Nordstrom/sekr8s/pkg/logger"
	"github.com/Nordstrom/sekr8s/pkg/prompt"
)

// Manager implements the get, set, and create operations over a
// kubectl.Runner. It holds no secret state of its own; every operation
// fetches fresh and writes back through the tool.
type Manager struct {
	runner     kubectl.Runner
	in         io.Reader
	out        io.Writer
	promptOpts []prompt.Option
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStreams replaces the standard input and output streams. Used by tests.
func WithStreams(in io.Reader, out io.Writer) ManagerOption {
	return func(m *Manager) {
		m.in = in
		m.out = out
	}
}

// WithPromptOptions passes options through to the line buffer opened during
// set and create.
func WithPromptOptions(opts ...prompt.Option) ManagerOption {
	return func(m *Manager) {
		m.promptOpts = opts
	}
}

// NewManager returns a Manager invoking the cluster tool through runner.
func NewManager(runner kubectl.Runner, opts ...ManagerOption) *Manager {
	m := &Manager{
		runner: runner,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// GetOptions controls output of Get.
type GetOptions struct {
	// Decode prints decoded values instead of their base64 form.
	Decode bool
	// Quiet prints bare values, newline-joined with no trailing newline,
	// instead of labeled `key: value` lines.
	Quiet bool
}

// Get fetches the secret and prints the requested keys. An empty key list
// prints every key in the tool's emission order.
func (m *Manager) Get(ctx context.Context, name string, keys []string, opts GetOptions) error {
	dump, err := kubectl.GetSecretData(ctx, m.runner, name)
	if err != nil {
		return err
	}

	selected, err := ParseDump(name, dump).Select(keys...)
	if err != nil {
		return err
	}

	entries := selected.Entries()
	if opts.Quiet {
		values := make([]string, 0, len(entries))
		for _, e := range entries {
			values = append(values, m.render(e.Value, opts.Decode))
		}
		fmt.Fprint(m.out, strings.Join(values, "\n"))
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(m.out, "%s: %s\n", e.Key, m.render(e.Value, opts.Decode))
	}
	return nil
}

func (*Manager) render(value string, decode bool) string {
	if decode {
		return string(DecodeValue(value))
	}
	return value
}

// SetOptions controls value handling of Set.
type SetOptions struct {
	// SkipEncode stores the collected input verbatim, for values the user
	// pipes in already base64-encoded. No local validation happens; the
	// external tool rejects malformed data at write time.
	SkipEncode bool
}

// Set prompts for a new value per key and patches the secret once all
// values are collected. An empty key list edits every key currently on the
// secret, in the tool's emission order.
func (m *Manager) Set(ctx context.Context, name string, keys []string, opts SetOptions) error {
	if len(keys) == 0 {
		listing, err := kubectl.GetSecretKeys(ctx, m.runner, name)
		if err != nil {
			return err
		}
		keys = ParseKeyList(listing)
	}

	return m.collectAndPatch(ctx, name, keys, opts.SkipEncode)
}

// CreateOptions controls value handling of Create.
type CreateOptions struct {
	// SkipEncode stores the collected input verbatim.
	SkipEncode bool
}

// Create provisions an empty secret, then runs the same collection flow as
// Set for any requested keys. With zero keys the empty secret is the whole
// result. A failure after creation leaves the secret empty or partially
// set; nothing is rolled back.
func (m *Manager) Create(ctx context.Context, name string, keys []string, opts CreateOptions) error {
	out, err := kubectl.CreateSecret(ctx, m.runner, name)
	if err != nil {
		return err
	}
	m.confirm(out)

	if len(keys) == 0 {
		return nil
	}

	return m.collectAndPatch(ctx, name, keys, opts.SkipEncode)
}

// collectAndPatch reads one line per key, strictly in key order with a
// single request outstanding at a time, then issues one patch call.
func (m *Manager) collectAndPatch(ctx context.Context, name string, keys []string, skipEncode bool) error {
	if len(keys) == 0 {
		logger.Debugw("no keys to collect, skipping patch", "secret", name)
		return nil
	}

	lb := prompt.New(m.in, m.out, m.promptOpts...)
	defer lb.Close()

	edits := make([]Entry, 0, len(keys))
	for _, key := range keys {
		line, err := lb.RequestLine(ctx, fmt.Sprintf("%s: ", key))
		if err != nil {
			return err
		}
		edits = append(edits, Entry{Key: key, Value: line})
	}

	if !skipEncode {
		for i := range edits {
			edits[i].Value = EncodeValue([]byte(edits[i].Value))
		}
	}

	out, err := kubectl.PatchSecret(ctx, m.runner, name, BuildPatch(edits))
	if err != nil {
		return err
	}
	m.confirm(out)
	return nil
}

// confirm forwards the tool's own confirmation line.
func (m *Manager) confirm(toolOutput string) {
	if msg := strings.TrimSpace(toolOutput); msg != "" {
		fmt.Fprintln(m.out, msg)
	}
}
