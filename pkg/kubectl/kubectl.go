// Package kubectl invokes the external cluster tool. All cluster
// communication goes through the tool's own binary; nothing in this package
// speaks to the API server directly.
package kubectl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	sekerr "github.com/Nordstrom/sekr8s/pkg/errors"
	"github.com/Nordstrom/sekr8s/pkg/logger"
)

// Runner abstracts one invocation of the cluster tool so command logic can
// be tested without a cluster.
type Runner interface {
	// Run executes the tool with the given arguments and returns its
	// stdout. A missing binary and a nonzero exit are both reported as
	// external tool errors; the latter carries the tool's stderr.
	Run(ctx context.Context, args ...string) (string, error)
}

// CLI runs the cluster tool as a subprocess. At most one invocation is in
// flight per command; calls block until the subprocess exits.
type CLI struct {
	binary    string
	namespace string
}

var _ Runner = (*CLI)(nil)

// New returns a CLI invoking binary, scoped to namespace when it is
// non-empty.
func New(binary, namespace string) *CLI {
	return &CLI{
		binary:    binary,
		namespace: namespace,
	}
}

// argv places the namespace flag ahead of the verb, matching the tool's
// `<binary> [-n <namespace>] <verb> ...` calling convention.
func (c *CLI) argv(args []string) []string {
	if c.namespace == "" {
		return args
	}
	return append([]string{"-n", c.namespace}, args...)
}

// Run implements Runner.
func (c *CLI) Run(ctx context.Context, args ...string) (string, error) {
	argv := c.argv(args)
	logger.Debugw("invoking cluster tool", "binary", c.binary, "args", argv)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", sekerr.NewExternalToolError(fmt.Sprintf("%s: command not found", c.binary), err)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.Error()
			}
			return "", sekerr.NewExternalToolError(msg, err)
		}

		return "", sekerr.NewExternalToolError(fmt.Sprintf("failed to start %s", c.binary), err)
	}

	return stdout.String(), nil
}

// dataTemplate emits one `key:base64value` record per entry in the secret's
// data, in the tool's own emission order.
const dataTemplate = `go-template={{range $k, $v := .data}}{{$k}}:{{$v}}{{"\n"}}{{end}}`

// keysTemplate emits one key per line.
const keysTemplate = `go-template={{range $k, $v := .data}}{{$k}}{{"\n"}}{{end}}`

// GetSecretData fetches the secret's full key/value dump.
func GetSecretData(ctx context.Context, r Runner, name string) (string, error) {
	return r.Run(ctx, "get", "secret", name, "-o", dataTemplate)
}

// GetSecretKeys fetches the secret's key-only listing.
func GetSecretKeys(ctx context.Context, r Runner, name string) (string, error) {
	return r.Run(ctx, "get", "secret", name, "-o", keysTemplate)
}

// CreateSecret provisions an empty generic secret.
func CreateSecret(ctx context.Context, r Runner, name string) (string, error) {
	return r.Run(ctx, "create", "secret", "generic", name)
}

// PatchSecret applies a partial-update document to the secret's data.
func PatchSecret(ctx context.Context, r Runner, name string, payload []byte) (string, error) {
	return r.Run(ctx, "patch", "secret", name, "-p", string(payload))
}
