package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"dataset-reconciler/core/reconcile"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Profile is a named, reusable comparison setup.
type Profile struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Alignment   string   `yaml:"alignment" json:"alignment"`
	Columns     []string `yaml:"columns,omitempty" json:"columns,omitempty"`
	Keys        []string `yaml:"keys,omitempty" json:"keys,omitempty"`
	Ignore      []string `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	TrimSpace   bool     `yaml:"trim_space,omitempty" json:"trim_space,omitempty"`

	// Source is the file the profile was read from, or "builtin".
	Source string `yaml:"-" json:"source"`
}

// Parse decodes a single YAML profile. Unknown fields are rejected.
func Parse(data []byte, source string) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty profile", source)
		}
		return nil, fmt.Errorf("%s: failed to parse profile: %w", source, err)
	}
	p.Source = source

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &p, nil
}

// LoadFile reads and validates a profile file.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data, path)
}

// Validate reports every problem of the profile at once.
func (p *Profile) Validate() error {
	var errs *multierror.Error

	if !namePattern.MatchString(p.Name) {
		errs = multierror.Append(errs, fmt.Errorf("name %q must be lowercase letters, digits, '-' or '_'", p.Name))
	}

	alignment, err := reconcile.ParseAlignment(p.Alignment)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	columns := mapset.NewThreadUnsafeSet[string]()
	for _, c := range p.Columns {
		if strings.TrimSpace(c) == "" {
			errs = multierror.Append(errs, errors.New("columns: blank column name"))
		} else if !columns.Add(c) {
			errs = multierror.Append(errs, fmt.Errorf("columns: %q listed twice", c))
		}
	}
	switch alignment {
	case reconcile.AlignPositional:
		if len(p.Columns) == 0 {
			errs = multierror.Append(errs, errors.New("positional alignment needs columns"))
		}
	case reconcile.AlignByName:
		if len(p.Columns) > 0 {
			errs = multierror.Append(errs, errors.New("columns are only allowed with positional alignment"))
		}
	}

	keys := mapset.NewThreadUnsafeSet[string]()
	for _, k := range p.Keys {
		switch {
		case strings.TrimSpace(k) == "":
			errs = multierror.Append(errs, errors.New("keys: blank key name"))
		case !keys.Add(k):
			errs = multierror.Append(errs, fmt.Errorf("keys: %q listed twice", k))
		case alignment == reconcile.AlignPositional && !columns.Contains(k):
			errs = multierror.Append(errs, fmt.Errorf("keys: %q is not one of the columns", k))
		}
	}

	for _, c := range p.Ignore {
		if keys.Contains(c) {
			errs = multierror.Append(errs, fmt.Errorf("ignore: %q is a key column", c))
		}
	}

	return errs.ErrorOrNil()
}

// Spec builds the reconcile spec. Non-empty keys replace the profile keys.
func (p *Profile) Spec(keys []string) reconcile.Spec {
	if len(keys) == 0 {
		keys = p.Keys
	}
	alignment, _ := reconcile.ParseAlignment(p.Alignment)
	return reconcile.Spec{
		Keys:      append([]string(nil), keys...),
		Alignment: alignment,
		Columns:   append([]string(nil), p.Columns...),
		Ignore:    append([]string(nil), p.Ignore...),
		TrimSpace: p.TrimSpace,
	}
}
