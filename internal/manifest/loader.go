package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// manifestPerm is the permission of manifests written by WriteFile.
const manifestPerm = 0o644

// LoadFile loads and parses a manifest from the given path. A relative dir
// is resolved against the directory of the manifest.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f.Path = path
	if f.Dir != "" && !filepath.IsAbs(f.Dir) {
		f.Dir = filepath.Join(filepath.Dir(path), f.Dir)
	}

	return f, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Package == "" && f.Dir != "" {
		f.Package = filepath.Base(filepath.Clean(f.Dir))
	}

	if f.PkgPath == "" {
		f.PkgPath = f.Package
	}

	for i := range f.Definitions {
		d := &f.Definitions[i]
		if d.Kind == "" {
			d.Kind = inferKind(d)
		}
	}
}

// inferKind picks union when variants are listed, array when every member
// is positional and struct otherwise.
func inferKind(d *DefinitionSpec) string {
	if len(d.Variants) > 0 {
		return KindUnion
	}

	if len(d.Members) == 0 {
		return KindStruct
	}

	for _, m := range d.Members {
		if m.Name != "" {
			return KindStruct
		}
	}

	return KindArray
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, manifestPerm); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}
