package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Simulator is the engine surface consumed by driving adapters.
type Simulator interface {
	// ListMachines returns the names of the machines the engine can load.
	ListMachines(ctx context.Context) ([]string, error)

	// LoadMachine loads and parses a named machine. The table is not validated.
	LoadMachine(ctx context.Context, name string) (*domain.Table, error)

	// Validate runs every structural check against table.
	Validate(ctx context.Context, table *domain.Table) error

	// Run validates table and input and simulates the machine.
	Run(ctx context.Context, table *domain.Table, input []string) (*domain.Result, error)
}
