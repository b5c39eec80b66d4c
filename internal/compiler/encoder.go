package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/domain"
)

// Encode writes desc in the given format. Text output round-trips through ParseText.
func Encode(desc *domain.Description, format Format) ([]byte, error) {
	switch format {
	case FormatText, FormatAuto:
		return encodeText(desc), nil
	case FormatYAML:
		out, err := yaml.Marshal(dto.FromDescription(desc))
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	case FormatJSON:
		out, err := json.MarshalIndent(dto.FromDescription(desc), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("encode: unknown format %q", format)
}

func encodeText(desc *domain.Description) []byte {
	var b bytes.Buffer
	if desc.Name != "" {
		fmt.Fprintf(&b, "[name]\n%s\n\n", desc.Name)
	}
	if desc.Kind != "" {
		fmt.Fprintf(&b, "[kind]\n%s\n\n", desc.Kind)
	}
	if desc.States != nil {
		b.WriteString("[states]\n")
		for _, s := range desc.States {
			if s.Role == domain.RolePlain {
				fmt.Fprintln(&b, s.ID)
				continue
			}
			fmt.Fprintf(&b, "%s %s\n", s.ID, string(s.Role))
		}
		b.WriteString("\n")
	}
	if desc.Sigma != nil {
		b.WriteString("[sigma]\n")
		if len(desc.Sigma) > 0 {
			fmt.Fprintln(&b, strings.Join(desc.Sigma, " "))
		}
		b.WriteString("\n")
	}
	if desc.Rules != nil {
		b.WriteString("[rules]\n")
		for _, r := range desc.Rules {
			fmt.Fprintln(&b, r.String())
		}
	}
	return b.Bytes()
}
