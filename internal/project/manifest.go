package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leilaShen/BoxStack/internal/model"
)

// ManifestExt is the file extension for saved manifests.
const ManifestExt = ".boxstack"

// SaveManifest writes a manifest to the given path as indented JSON,
// creating parent directories as needed. The packing result, if present, is
// saved along with the inputs.
func SaveManifest(path string, m model.Manifest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest from the given path.
func LoadManifest(path string) (model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Manifest{}, fmt.Errorf("failed to read manifest file: %w", err)
	}
	var m model.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return model.Manifest{}, fmt.Errorf("failed to parse manifest file: %w", err)
	}
	if m.Boxes == nil {
		m.Boxes = []model.BoxRequest{}
	}
	if m.Containers == nil {
		m.Containers = []model.Container{}
	}
	return m, nil
}
