// Package report renders simulation results for people and for programs.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Format selects a report rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCBOR     Format = "cbor"
)

// ErrUnknownFormat is returned for a format name that has no renderer.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat resolves a format name. "md" and "yml" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Binary reports whether the format produces non-printable output.
func (f Format) Binary() bool { return f == FormatCBOR }

// ContentType is the media type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatCBOR:
		return "application/cbor"
	}
	return "text/plain; charset=utf-8"
}

// Write renders res to w in the given format.
func Write(w io.Writer, format Format, res *domain.Result) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatText, "":
		out = []byte(Text(res))
	case FormatMarkdown:
		out = []byte(Markdown(res))
	case FormatHTML:
		out = HTML(res)
	case FormatJSON:
		out, err = MarshalJSON(res)
	case FormatYAML:
		out, err = MarshalYAML(res)
	case FormatCBOR:
		out, err = MarshalCBOR(res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s report: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}
