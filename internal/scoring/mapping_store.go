package scoring

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MappingFile is the on-disk question-to-dimension table for one framework.
type MappingFile struct {
	Framework Framework         `yaml:"framework"`
	Items     map[string]string `yaml:"items"`
}

// MappingStore manages per-framework mapping files in a directory.
type MappingStore struct {
	dataDir string
}

// NewMappingStore creates a new mapping store
func NewMappingStore(dataDir string) *MappingStore {
	return &MappingStore{dataDir: dataDir}
}

// LoadMapping loads the mapping for a framework. Questions the file does not
// list, or a missing file, fall back to round-robin assignment.
func (m *MappingStore) LoadMapping(f Framework) (Mapping, error) {
	def, ok := definitions[f]
	if !ok {
		return nil, fmt.Errorf("unsupported framework %q", f)
	}
	fallback := RoundRobin(def.Dimensions)

	if m == nil || m.dataDir == "" {
		return fallback, nil
	}

	filePath := m.path(f)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fallback, nil
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var file MappingFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode mapping file: %w", err)
	}

	if file.Framework != "" && file.Framework != f {
		return nil, fmt.Errorf("mapping file %s declares framework %q", filePath, file.Framework)
	}

	declared := make(map[string]bool, len(def.Dimensions))
	for _, d := range def.Dimensions {
		declared[d] = true
	}
	for q, dim := range file.Items {
		if !declared[dim] {
			return nil, fmt.Errorf("question %s maps to unknown %s dimension %q", q, f, dim)
		}
	}

	return TableMapping{Items: file.Items, Fallback: fallback}, nil
}

// SaveMapping writes a mapping table for a framework.
func (m *MappingStore) SaveMapping(f Framework, items map[string]string) error {
	if err := os.MkdirAll(m.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create mapping directory: %w", err)
	}

	out, err := yaml.Marshal(MappingFile{Framework: f, Items: items})
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	if err := os.WriteFile(m.path(f), out, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file: %w", err)
	}
	return nil
}

func (m *MappingStore) path(f Framework) string {
	return filepath.Join(m.dataDir, fmt.Sprintf("%s.yaml", f))
}
