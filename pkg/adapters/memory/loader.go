package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Store implements ports.MachineStore using an in-memory map.
// Safe for concurrent use.
type Store struct {
	docs map[string]ports.Document
	mu   sync.RWMutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{docs: make(map[string]ports.Document)}
}

// NewLoader creates a store preloaded with raw descriptions keyed by name.
// The format of each entry is detected from its content.
func NewLoader(data map[string]string) *Store {
	s := NewStore()
	for name, content := range data {
		s.docs[name] = ports.Document{Name: name, Data: []byte(content)}
	}
	return s
}

// NewFromDescriptions creates a store from domain descriptions.
// Each one is encoded in the text format, improving DX for tests and embedding.
func NewFromDescriptions(descs ...*domain.Description) (*Store, error) {
	s := NewStore()
	for _, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("description missing name")
		}
		data, err := compiler.Encode(d, compiler.FormatText)
		if err != nil {
			return nil, fmt.Errorf("failed to encode machine %s: %w", d.Name, err)
		}
		s.docs[d.Name] = ports.Document{Name: d.Name, Data: data}
	}
	return s, nil
}

// GetMachine returns a copy of the stored document.
func (s *Store) GetMachine(_ context.Context, name string) (*ports.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	doc.Data = slices.Clone(doc.Data)
	return &doc, nil
}

// ListMachines returns all machine names in sorted order.
func (s *Store) ListMachines(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
