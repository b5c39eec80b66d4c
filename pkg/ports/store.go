package ports

import "context"

// MachineStore is a writable MachineLoader.
type MachineStore interface {
	MachineLoader

	// SaveMachine stores doc under doc.Name, replacing any previous version.
	SaveMachine(ctx context.Context, doc *Document) error

	// DeleteMachine removes a machine. Deleting a missing machine is not an error.
	DeleteMachine(ctx context.Context, name string) error
}
