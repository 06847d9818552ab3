package profile

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinSource marks profiles shipped with the binary.
const BuiltinSource = "builtin"

// Registry holds profiles by name.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry returns a registry holding only the built-in profiles.
func NewRegistry() (*Registry, error) {
	r := &Registry{profiles: make(map[string]*Profile)}

	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, err
		}
		p, err := Parse(data, BuiltinSource)
		if err != nil {
			return nil, err
		}
		r.profiles[p.Name] = p
	}
	return r, nil
}

// LoadDir returns the built-in profiles plus every profile in dir. A missing dir is not
// an error. All invalid files are reported together; a file may not reuse a name.
func LoadDir(dir string) (*Registry, error) {
	r, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return r, nil
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles dir: %w", err)
	}

	var errs *multierror.Error
	for _, e := range entries {
		if e.IsDir() || !IsProfileFile(e.Name()) {
			continue
		}
		p, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if prev, ok := r.profiles[p.Name]; ok {
			errs = multierror.Append(errs, fmt.Errorf("%s: profile %q already defined in %s", p.Source, p.Name, prev.Source))
			continue
		}
		r.profiles[p.Name] = p
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// IsProfileFile reports whether the name has a YAML extension.
func IsProfileFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Get returns the profile with the given name.
func (r *Registry) Get(name string) (*Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// List returns all profiles sorted by name.
func (r *Registry) List() []*Profile {
	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// Resolve returns a registered profile by name, or loads it from a YAML file path.
func (r *Registry) Resolve(nameOrPath string) (*Profile, error) {
	if p, ok := r.Get(nameOrPath); ok {
		return p, nil
	}
	if IsProfileFile(nameOrPath) {
		return LoadFile(nameOrPath)
	}
	return nil, fmt.Errorf("unknown profile %q", nameOrPath)
}
