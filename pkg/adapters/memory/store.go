package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/automata/pkg/ports"
)

// SaveMachine stores a copy of doc.
func (s *Store) SaveMachine(_ context.Context, doc *ports.Document) error {
	if doc == nil || doc.Name == "" {
		return fmt.Errorf("save machine: document needs a name")
	}
	stored := *doc
	stored.Data = slices.Clone(doc.Data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Name] = stored
	return nil
}

// DeleteMachine removes a machine.
func (s *Store) DeleteMachine(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, name)
	return nil
}
