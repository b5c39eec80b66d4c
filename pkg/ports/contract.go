package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
)

// RunMachineStoreContract runs a suite of tests to verify that a MachineStore
// implementation adheres to the interface contract.
func RunMachineStoreContract(t *testing.T, store MachineStore) {
	t.Helper()
	ctx := context.Background()

	doc := &Document{
		Name:     "contract-parity",
		Filename: "contract-parity.dfa",
		Data:     []byte("[states]\nq0 S\nq1 F\n[sigma]\na\n[rules]\nq0 a q1\n"),
	}

	t.Run("Save and Get", func(t *testing.T) {
		require.NoError(t, store.SaveMachine(ctx, doc))

		got, err := store.GetMachine(ctx, doc.Name)
		require.NoError(t, err)
		assert.Equal(t, doc.Name, got.Name)
		assert.Equal(t, doc.Filename, got.Filename)
		assert.Equal(t, string(doc.Data), string(got.Data))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.GetMachine(ctx, "contract-missing")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := *doc
		updated.Data = []byte("[states]\nq0 S\n[sigma]\na\n[rules]\n")
		require.NoError(t, store.SaveMachine(ctx, &updated))

		got, err := store.GetMachine(ctx, doc.Name)
		require.NoError(t, err)
		assert.Equal(t, string(updated.Data), string(got.Data))
	})

	t.Run("List", func(t *testing.T) {
		other := &Document{Name: "contract-other", Data: []byte("[states]\n")}
		require.NoError(t, store.SaveMachine(ctx, other))
		defer func() { _ = store.DeleteMachine(ctx, other.Name) }()

		names, err := store.ListMachines(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, doc.Name)
		assert.Contains(t, names, other.Name)
		assert.IsNonDecreasing(t, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.DeleteMachine(ctx, doc.Name))
		_, err := store.GetMachine(ctx, doc.Name)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)

		assert.NoError(t, store.DeleteMachine(ctx, doc.Name), "deleting twice is fine")
	})
}
