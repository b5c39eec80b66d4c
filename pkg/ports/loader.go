package ports

import "context"

// Document is a raw machine description as kept by a storage backend.
type Document struct {
	// Name is the lookup key, usually the file name without extension.
	Name string `json:"name"`
	// Filename carries the original file name; its extension hints format and kind.
	// It may be empty, in which case the format is detected from the content.
	Filename string `json:"filename,omitempty"`
	Data     []byte `json:"data"`
}

// MachineLoader defines how the engine retrieves machine descriptions.
// Parsing is left to the caller so storage stays format-agnostic.
type MachineLoader interface {
	// GetMachine returns the document stored under name.
	// It returns domain.ErrMachineNotFound when nothing is stored under that name.
	GetMachine(ctx context.Context, name string) (*Document, error)

	// ListMachines returns the names of all available machines, sorted.
	ListMachines(ctx context.Context) ([]string, error)
}
