package secret

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nordstrom/sekr8s/pkg/errors"
	"github.com/Nordstrom/sekr8s/pkg/prompt"
)

// scriptedRunner returns canned results in call order and records every
// invocation.
type scriptedRunner struct {
	calls [][]string
	steps []scriptedStep
}

type scriptedStep struct {
	out string
	err error
}

func (r *scriptedRunner) Run(_ context.Context, args ...string) (string, error) {
	r.calls = append(r.calls, args)
	if len(r.steps) == 0 {
		return "", nil
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	return step.out, step.err
}

func newTestManager(runner *scriptedRunner, input string) (*Manager, *bytes.Buffer) {
	var out bytes.Buffer
	m := NewManager(runner,
		WithStreams(strings.NewReader(input), &out),
		WithPromptOptions(prompt.WithInteractive(false)),
	)
	return m, &out
}

func TestGetLabeledOutput(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{{out: "foo:YmFy\nbaz:cXV1eA==\n"}}}
	m, out := newTestManager(runner, "")

	err := m.Get(context.Background(), "db-creds", nil, GetOptions{})
	require.NoError(t, err)

	assert.Equal(t, "foo: YmFy\nbaz: cXV1eA==\n", out.String())
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "get", runner.calls[0][0])
}

func TestGetQuietDecodedOutput(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{{out: "foo:YmFy\nbaz:cXV1eA==\n"}}}
	m, out := newTestManager(runner, "")

	err := m.Get(context.Background(), "db-creds", []string{"baz", "foo"}, GetOptions{Decode: true, Quiet: true})
	require.NoError(t, err)

	// Bare values, request order, no trailing newline.
	assert.Equal(t, "quux\nbar", out.String())
}

func TestGetMissingKeyAborts(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{{out: "foo:YmFy\n"}}}
	m, out := newTestManager(runner, "")

	err := m.Get(context.Background(), "db-creds", []string{"nope"}, GetOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsKeyNotFound(err))
	assert.Empty(t, out.String(), "no partial output on failure")
}

func TestGetToolFailureAborts(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{
		{err: errors.NewExternalToolError(`secrets "db-creds" not found`, nil)},
	}}
	m, out := newTestManager(runner, "")

	err := m.Get(context.Background(), "db-creds", nil, GetOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsExternalTool(err))
	assert.Empty(t, out.String())
}

func TestSetExplicitKeysBuildsPatch(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{{out: "secret/db-creds patched\n"}}}
	m, out := newTestManager(runner, "1\n2\n")

	err := m.Set(context.Background(), "db-creds", []string{"a", "b"}, SetOptions{})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1, "exactly one patch invocation")
	patch := runner.calls[0]
	assert.Equal(t, []string{"patch", "secret", "db-creds", "-p", `{"data":{"a":"MQ==","b":"Mg=="}}`}, patch)
	assert.Equal(t, "secret/db-creds patched\n", out.String())
}

func TestSetWithoutKeysEditsEveryKey(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{
		{out: "a\nb\n"},
		{out: "secret/db-creds patched\n"},
	}}
	m, _ := newTestManager(runner, "1\n2\n")

	err := m.Set(context.Background(), "db-creds", nil, SetOptions{})
	require.NoError(t, err)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "get", runner.calls[0][0])
	assert.Equal(t, []string{"patch", "secret", "db-creds", "-p", `{"data":{"a":"MQ==","b":"Mg=="}}`}, runner.calls[1])
}

func TestSetSkipEncodePassesValuesThrough(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{}
	m, _ := newTestManager(runner, "MQ==\n")

	err := m.Set(context.Background(), "db-creds", []string{"a"}, SetOptions{SkipEncode: true})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, `{"data":{"a":"MQ=="}}`, runner.calls[0][4])
}

func TestSetInsufficientInputAbortsBeforePatch(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{}
	m, _ := newTestManager(runner, "only-one\n")

	err := m.Set(context.Background(), "db-creds", []string{"a", "b"}, SetOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Empty(t, runner.calls, "no patch after failed collection")
}

func TestCreateWithoutKeys(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{{out: "secret/db-creds created\n"}}}
	m, out := newTestManager(runner, "")

	err := m.Create(context.Background(), "db-creds", nil, CreateOptions{})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1, "create only, no patch")
	assert.Equal(t, []string{"create", "secret", "generic", "db-creds"}, runner.calls[0])
	assert.Equal(t, "secret/db-creds created\n", out.String())
}

func TestCreateWithKeysPatchesAfterCreate(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{
		{out: "secret/db-creds created\n"},
		{out: "secret/db-creds patched\n"},
	}}
	m, out := newTestManager(runner, "supersecret\n")

	err := m.Create(context.Background(), "db-creds", []string{"password"}, CreateOptions{})
	require.NoError(t, err)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "create", runner.calls[0][0])
	assert.Equal(t, []string{"patch", "secret", "db-creds", "-p", `{"data":{"password":"c3VwZXJzZWNyZXQ="}}`}, runner.calls[1])
	assert.Equal(t, "secret/db-creds created\nsecret/db-creds patched\n", out.String())
}

func TestCreateFailureStopsBeforeCollection(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{steps: []scriptedStep{
		{err: errors.NewExternalToolError("already exists", nil)},
	}}
	m, out := newTestManager(runner, "value\n")

	err := m.Create(context.Background(), "db-creds", []string{"a"}, CreateOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsExternalTool(err))
	require.Len(t, runner.calls, 1)
	assert.Empty(t, out.String(), "no confirmation after failure")
}

func TestSetPromptsPerKeyWhenInteractive(t *testing.T) {
	t.Parallel()
	runner := &scriptedRunner{}
	var out bytes.Buffer
	m := NewManager(runner,
		WithStreams(strings.NewReader("1\n2\n"), &out),
		WithPromptOptions(prompt.WithInteractive(true)),
	)

	err := m.Set(context.Background(), "db-creds", []string{"user", "pass"}, SetOptions{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "user: ")
	assert.Contains(t, out.String(), "pass: ")
}
