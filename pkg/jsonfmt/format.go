// Package jsonfmt formats JSON with object keys in sorted order, and provides
// the formatter app: an input pane, a live output pane and two options.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidJSON is returned for input that is not a single JSON value.
var ErrInvalidJSON = errors.New("invalid JSON")

// Options controls the output layout.
type Options struct {
	// PrettyPrint indents nested values by two spaces, one member per line.
	PrettyPrint bool `yaml:"prettyPrint"`
	// SerializeNulls keeps object members whose value is null.
	SerializeNulls bool `yaml:"serializeNulls"`
}

// DefaultOptions pretty prints and keeps nulls.
func DefaultOptions() Options {
	return Options{PrettyPrint: true, SerializeNulls: true}
}

// Format reformats input with object keys sorted at every level. Numbers are
// kept exactly as written. Blank input formats to the empty string.
func Format(input string, opts Options) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", describe(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", fmt.Errorf("%w: unexpected data after the top-level value at offset %d", ErrInvalidJSON, dec.InputOffset())
	}

	if !opts.SerializeNulls {
		v = dropNulls(v)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// dropNulls removes null object members at every level. Nulls inside arrays
// are positional and kept.
func dropNulls(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, member := range v {
			if member == nil {
				delete(v, k)
				continue
			}
			v[k] = dropNulls(member)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = dropNulls(item)
		}
		return v
	default:
		return v
	}
}

func describe(err error) error {
	var syntax *json.SyntaxError
	switch {
	case errors.As(err, &syntax):
		return fmt.Errorf("%w at offset %d: %v", ErrInvalidJSON, syntax.Offset, err)
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return fmt.Errorf("%w: unexpected end of input", ErrInvalidJSON)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
}
