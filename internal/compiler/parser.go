package compiler

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/domain"
)

// ErrSyntax is returned when a description cannot be read at all.
var ErrSyntax = errors.New("syntax error")

// Format identifies the encoding of a description.
type Format string

const (
	FormatAuto Format = ""
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Extensions lists the file extensions recognised as machine descriptions.
var Extensions = []string{".txt", ".dfa", ".nfa", ".pda", ".tm", ".yaml", ".yml", ".json"}

// FormatFromExt maps a file extension to a format. Unknown extensions mean auto-detection.
func FormatFromExt(ext string) Format {
	switch strings.ToLower(ext) {
	case ".txt", ".dfa", ".nfa", ".pda", ".tm":
		return FormatText
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatAuto
}

// KindFromExt returns the machine kind implied by an extension such as ".pda", or "".
func KindFromExt(ext string) domain.Kind {
	switch strings.ToLower(ext) {
	case ".dfa":
		return domain.KindFinite
	case ".nfa":
		return domain.KindNondeterministic
	case ".pda":
		return domain.KindPushdown
	case ".tm":
		return domain.KindTuring
	}
	return ""
}

// Parser converts raw bytes into a machine description.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses data read from path. The extension chooses the format and may
// imply the kind; the base name becomes the machine name when none is declared.
func (p *Parser) ParseFile(path string, data []byte) (*domain.Description, error) {
	ext := filepath.Ext(path)
	desc, err := p.ParseFormat(data, FormatFromExt(ext))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), ext)
	}
	if desc.Kind == "" {
		desc.Kind = KindFromExt(ext)
	}
	return desc, nil
}

// Parse detects the format and decodes data.
func (p *Parser) Parse(data []byte) (*domain.Description, error) {
	return p.ParseFormat(data, FormatAuto)
}

// ParseFormat decodes data in the given format. FormatAuto looks at the first
// meaningful line: '[' means text, '{' means JSON, anything else YAML.
func (p *Parser) ParseFormat(data []byte, format Format) (*domain.Description, error) {
	if format == FormatAuto {
		format = Detect(data)
	}
	switch format {
	case FormatText:
		return ParseText(data)
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	}
	return nil, fmt.Errorf("%w: unknown format %q", ErrSyntax, format)
}

// Detect guesses the format of data.
func Detect(data []byte) Format {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || line == "---" {
			continue
		}
		switch line[0] {
		case '[':
			return FormatText
		case '{':
			return FormatJSON
		}
		return FormatYAML
	}
	return FormatText
}

// ParseText reads the sectioned text format:
//
//	# comment
//	[states]
//	q0 S
//	q1 F
//	[sigma]
//	a b
//	[rules]
//	q0 a q1
//
// Lines before the first header and sections other than states, sigma, rules
// kind and name are ignored. Every token of a sigma line is a symbol.
func ParseText(data []byte) (*domain.Description, error) {
	desc := &domain.Description{}
	section := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			switch section {
			case "states":
				if desc.States == nil {
					desc.States = []domain.State{}
				}
			case "sigma":
				if desc.Sigma == nil {
					desc.Sigma = []string{}
				}
			case "rules":
				if desc.Rules == nil {
					desc.Rules = []domain.Rule{}
				}
			}
			continue
		}

		fields := strings.Fields(line)
		switch section {
		case "states":
			if len(fields) > 2 {
				return nil, fmt.Errorf("line %d: %w: state line %q, expected \"id [role]\"", lineNo, ErrSyntax, line)
			}
			state := domain.State{ID: fields[0]}
			if len(fields) == 2 {
				state.Role = domain.ParseRole(fields[1])
			}
			desc.States = append(desc.States, state)
		case "sigma":
			for _, sym := range fields {
				if !slices.Contains(desc.Sigma, sym) {
					desc.Sigma = append(desc.Sigma, sym)
				}
			}
		case "rules":
			desc.Rules = append(desc.Rules, domain.Rule(fields))
		case "kind":
			kind, err := domain.ParseKind(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			desc.Kind = kind
		case "name":
			desc.Name = line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}
	return desc, nil
}

func parseJSON(data []byte) (*domain.Description, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrSyntax, err)
	}
	return fromMap(raw)
}

func parseYAML(data []byte) (*domain.Description, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrSyntax, err)
	}
	return fromMap(raw)
}

func fromMap(raw map[string]any) (*domain.Description, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	m, err := dto.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return m.ToDescription()
}
