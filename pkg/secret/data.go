// Package secret translates between the cluster tool's textual secret
// representation and the key/value form the commands work with, and drives
// the get, set, and create operations.
package secret

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nordstrom/sekr8s/pkg/errors"
)

// Entry is a single key/value pair of a secret's data.
type Entry struct {
	Key   string
	Value string
}

// Data is an ordered key to encoded-value mapping for one secret. Keys are
// unique; order is the tool's emission order, or the caller's when selected
// explicitly.
type Data struct {
	name   string
	keys   []string
	values map[string]string
}

// ParseDump parses the tool's templated output, one `key:base64value`
// record per line. Each record splits on the first colon; keys never
// contain colons and base64 values never introduce one ambiguously. The
// empty record left by the terminal newline is dropped.
func ParseDump(name, raw string) *Data {
	d := &Data{name: name, values: make(map[string]string)}
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		key, value, _ := strings.Cut(line, ":")
		if _, seen := d.values[key]; !seen {
			d.keys = append(d.keys, key)
		}
		d.values[key] = value
	}
	return d
}

// ParseKeyList parses the tool's key-only listing, one key per line.
func ParseKeyList(raw string) []string {
	var keys []string
	for _, line := range strings.Split(raw, "\n") {
		if line != "" {
			keys = append(keys, line)
		}
	}
	return keys
}

// Name returns the secret name this data was fetched from.
func (d *Data) Name() string {
	return d.name
}

// Len returns the number of entries.
func (d *Data) Len() int {
	return len(d.keys)
}

// Entries returns the entries in order.
func (d *Data) Entries() []Entry {
	entries := make([]Entry, 0, len(d.keys))
	for _, k := range d.keys {
		entries = append(entries, Entry{Key: k, Value: d.values[k]})
	}
	return entries
}

// Select returns the entries for the requested keys, in request order. An
// empty request selects everything in source order. A key absent from the
// data fails the whole selection with a key not found error.
func (d *Data) Select(keys ...string) (*Data, error) {
	if len(keys) == 0 {
		return d, nil
	}

	out := &Data{name: d.name, values: make(map[string]string)}
	for _, k := range keys {
		v, ok := d.values[k]
		if !ok {
			return nil, errors.NewKeyNotFoundError(
				fmt.Sprintf("key %q not found in secret %q", k, d.name), nil)
		}
		if _, seen := out.values[k]; !seen {
			out.keys = append(out.keys, k)
		}
		out.values[k] = v
	}
	return out, nil
}

// DecodeValue decodes a base64 value the way the cluster ecosystem's own
// lenient decoder does: bytes outside the base64 alphabet are ignored and a
// partial trailing quantum is tolerated. It never fails; genuinely malformed
// data is left for the external tool to reject at write time.
func DecodeValue(encoded string) []byte {
	clean := make([]byte, 0, len(encoded))
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/':
			clean = append(clean, c)
		}
	}
	if len(clean)%4 == 1 {
		// a single leftover sextet cannot carry a full byte
		clean = clean[:len(clean)-1]
	}
	decoded, _ := base64.RawStdEncoding.DecodeString(string(clean))
	return decoded
}

// EncodeValue encodes raw bytes as standard base64.
func EncodeValue(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// BuildPatch serializes the pairs into the partial-update document the tool
// expects, `{"data":{key:value,...}}`, preserving pair order. Values must
// already be in their final form, encoded or passed through as the caller
// chose.
func BuildPatch(entries []Entry) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"data":{`)
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(e.Key)
		v, _ := json.Marshal(e.Value)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString("}}")
	return buf.Bytes()
}
