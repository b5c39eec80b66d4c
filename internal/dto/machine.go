package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/automata/pkg/domain"
)

// Machine is the loosely typed form of a structured (YAML/JSON) description.
// It uses "mapstructure" tags so documents decoded into generic maps can be bound
// without caring about the source format.
type Machine struct {
	Name   string        `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Kind   string        `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	States []StateEntry  `json:"states" yaml:"states" mapstructure:"states"`
	Sigma  []string      `json:"sigma" yaml:"sigma" mapstructure:"sigma"`
	Rules  []domain.Rule `json:"rules" yaml:"rules" mapstructure:"rules"`

	Epsilon    string `json:"epsilon,omitempty" yaml:"epsilon,omitempty" mapstructure:"epsilon"`
	EmptyStack string `json:"empty_stack,omitempty" yaml:"empty_stack,omitempty" mapstructure:"empty_stack"`
	Blank      string `json:"blank,omitempty" yaml:"blank,omitempty" mapstructure:"blank"`
}

// StateEntry accepts `{id: q0, role: S}`, `[q0, S]` or the text-format line `"q0 S"`.
type StateEntry struct {
	ID   string `json:"id" yaml:"id" mapstructure:"id"`
	Role string `json:"role,omitempty" yaml:"role,omitempty" mapstructure:"role"`
}

var stateEntryType = reflect.TypeOf(StateEntry{})

// Decode binds a generic document to a Machine. Sections present with a null or
// empty value stay present (empty, non-nil); absent sections stay nil.
func Decode(raw map[string]any) (*Machine, error) {
	var m Machine
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stateEntryHook,
			fieldsHook,
		),
		WeaklyTypedInput: true,
		ErrorUnused:      false,
		Result:           &m,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode machine: %w", err)
	}

	if _, ok := raw["states"]; ok && m.States == nil {
		m.States = []StateEntry{}
	}
	if _, ok := raw["sigma"]; ok && m.Sigma == nil {
		m.Sigma = []string{}
	}
	if _, ok := raw["rules"]; ok && m.Rules == nil {
		m.Rules = []domain.Rule{}
	}
	return &m, nil
}

// stateEntryHook turns the short forms of a state into the map form.
func stateEntryHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stateEntryType {
		return data, nil
	}
	var fields []string
	switch v := data.(type) {
	case string:
		fields = strings.Fields(v)
	case []any:
		for _, f := range v {
			fields = append(fields, fmt.Sprint(f))
		}
	default:
		return data, nil
	}
	switch len(fields) {
	case 1:
		return map[string]any{"id": fields[0]}, nil
	case 2:
		return map[string]any{"id": fields[0], "role": fields[1]}, nil
	}
	return nil, fmt.Errorf("state %v: expected \"id [role]\"", data)
}

// fieldsHook splits a whitespace separated string into a string slice, so sigma
// and rules can be written as "a b" or "q0 a q1".
func fieldsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	return strings.Fields(s), nil
}

// ToDescription converts the transfer object into the domain description.
func (m *Machine) ToDescription() (*domain.Description, error) {
	desc := &domain.Description{
		Name:       m.Name,
		Sigma:      m.Sigma,
		Rules:      m.Rules,
		Epsilon:    m.Epsilon,
		EmptyStack: m.EmptyStack,
		Blank:      m.Blank,
	}
	if m.Kind != "" {
		kind, err := domain.ParseKind(m.Kind)
		if err != nil {
			return nil, err
		}
		desc.Kind = kind
	}
	if m.States != nil {
		desc.States = make([]domain.State, 0, len(m.States))
		for _, s := range m.States {
			desc.States = append(desc.States, domain.State{ID: s.ID, Role: domain.ParseRole(s.Role)})
		}
	}
	return desc, nil
}

// FromDescription builds the transfer object used when a description is written out.
func FromDescription(d *domain.Description) *Machine {
	m := &Machine{
		Name:       d.Name,
		Kind:       string(d.Kind),
		Sigma:      d.Sigma,
		Rules:      d.Rules,
		Epsilon:    d.Epsilon,
		EmptyStack: d.EmptyStack,
		Blank:      d.Blank,
	}
	if d.States != nil {
		m.States = make([]StateEntry, 0, len(d.States))
		for _, s := range d.States {
			m.States = append(m.States, StateEntry{ID: s.ID, Role: string(s.Role)})
		}
	}
	return m
}
