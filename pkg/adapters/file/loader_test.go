package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "even.dfa", "[states]\nq0 S\n")
	write(t, dir, "even.yaml", "states: []\n")
	write(t, dir, "nested/balanced.pda", "[states]\n")
	write(t, dir, "README.md", "not a machine")
	write(t, dir, ".hidden/skip.dfa", "[states]\n")

	loader, err := file.New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	names, err := loader.ListMachines(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"even", "nested/balanced"}, names)

	doc, err := loader.GetMachine(ctx, "even")
	require.NoError(t, err)
	assert.Equal(t, "even.dfa", doc.Filename, ".dfa ranks before .yaml")
	assert.Equal(t, "[states]\nq0 S\n", string(doc.Data))

	doc, err = loader.GetMachine(ctx, "nested/balanced")
	require.NoError(t, err)
	assert.Equal(t, "balanced.pda", doc.Filename)

	_, err = loader.GetMachine(ctx, "README")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestNew_Errors(t *testing.T) {
	_, err := file.New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	write(t, dir, "plain.txt", "")
	_, err = file.New(filepath.Join(dir, "plain.txt"))
	assert.Error(t, err)
}
