package merging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Manifest lists the file sets of a batch merge. Settings left empty fall back to configuration.
type Manifest struct {
	Differ      string    `yaml:"differ,omitempty"`
	Markers     *bool     `yaml:"markers,omitempty"`
	Concurrency int       `yaml:"concurrency,omitempty"`
	Files       []FileSet `yaml:"files"`

	// Dir is the directory relative file references resolve against.
	Dir string `yaml:"-"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m.Dir = filepath.Dir(path)
	return m, nil
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Manifest) Validate() error {
	var errs *multierror.Error

	if len(m.Files) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("manifest lists no files"))
	}

	for i, f := range m.Files {
		if f.Remote == "" {
			errs = multierror.Append(errs, fmt.Errorf("files[%d]: remote is required", i))
		}
		if f.OutputPath() == "" {
			errs = multierror.Append(errs, fmt.Errorf("files[%d]: local or output is required", i))
		}
	}

	dupes := lo.FindDuplicates(lo.Compact(lo.Map(m.Files, func(f FileSet, _ int) string {
		return filepath.Clean(f.OutputPath())
	})))
	for _, d := range dupes {
		if d != "." {
			errs = multierror.Append(errs, fmt.Errorf("output %s is written by more than one file set", d))
		}
	}

	return errs.ErrorOrNil()
}
