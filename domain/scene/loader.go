package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// yamlManifest is the YAML structure for manager manifests.
type yamlManifest struct {
	Manager  string   `yaml:"manager"`
	Messages []string `yaml:"messages"`
}

// Manifest lists the messages a session manager must handle.
type Manifest struct {
	Manager  string
	Messages []string
}

// Validate checks that m handles every message in the manifest. All missing
// messages are reported together.
func (mf *Manifest) Validate(m Manager) error {
	if m == nil {
		return fmt.Errorf("manifest %s: no manager to validate", mf.Manager)
	}

	var errs []error
	for _, msg := range mf.Messages {
		if _, ok := m.Handler(msg); !ok {
			errs = append(errs, NewMissingHandlerError(msg, m))
		}
	}
	return errors.Join(errs...)
}

// Loader reads manager manifests from a filesystem.
type Loader struct {
	manifests map[string]*Manifest
}

// NewLoader creates an empty manifest loader.
func NewLoader() *Loader {
	return &Loader{manifests: make(map[string]*Manifest)}
}

// LoadFromFS loads every .yaml/.yml manifest in dir.
func (l *Loader) LoadFromFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read manifest directory: %w", err)
	}

	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		if err := l.LoadFile(fsys, path.Join(dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// LoadFile loads a single manifest file.
func (l *Loader) LoadFile(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read manifest %s: %w", name, err)
	}

	var ym yamlManifest
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return fmt.Errorf("failed to parse manifest %s: %w", name, err)
	}
	if ym.Manager == "" {
		return fmt.Errorf("manifest %s: missing manager name", name)
	}

	l.manifests[ym.Manager] = &Manifest{
		Manager:  ym.Manager,
		Messages: ym.Messages,
	}
	return nil
}

// Get returns the manifest for a manager name, or nil.
func (l *Loader) Get(manager string) *Manifest {
	return l.manifests[manager]
}

// Count returns the number of loaded manifests.
func (l *Loader) Count() int {
	return len(l.manifests)
}
