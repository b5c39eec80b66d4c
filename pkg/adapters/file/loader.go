package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Loader implements ports.MachineLoader over a directory tree.
// A machine's name is its path relative to the root, slash separated and without
// extension: machines/even.dfa is "machines/even". When two files share a name the
// first one in extension order wins (see compiler.Extensions).
type Loader struct {
	root string
}

// New creates a loader rooted at dir.
func New(dir string) (*Loader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("machine directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("machine directory: %s is not a directory", abs)
	}
	return &Loader{root: abs}, nil
}

// Root returns the absolute directory the loader reads from.
func (l *Loader) Root() string { return l.root }

// GetMachine reads the file backing name.
func (l *Loader) GetMachine(ctx context.Context, name string) (*ports.Document, error) {
	files, err := l.scan(ctx)
	if err != nil {
		return nil, err
	}
	path, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read machine %s: %w", name, err)
	}
	return &ports.Document{Name: name, Filename: filepath.Base(path), Data: data}, nil
}

// ListMachines returns every machine name under the root, sorted.
func (l *Loader) ListMachines(ctx context.Context) ([]string, error) {
	files, err := l.scan(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// scan maps machine names to file paths.
func (l *Loader) scan(ctx context.Context) (map[string]string, error) {
	files := make(map[string]string)
	rank := make(map[string]int)

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		r := slices.Index(compiler.Extensions, ext)
		if r < 0 {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		if prev, seen := rank[name]; seen && prev <= r {
			return nil
		}
		files[name] = path
		rank[name] = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.root, err)
	}
	return files, nil
}
