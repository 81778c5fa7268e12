package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// FileStore keeps the brand profile in a YAML file. The original client
// held this in browser storage; a file is the CLI equivalent.
type FileStore struct {
	path string
}

var _ ports.ProfileStore = (*FileStore)(nil)

// NewFileStore points the store at a profile file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the profile. A missing file yields (nil, nil): no profile
// configured is a normal state, gating monitoring mode.
func (s *FileStore) Load() (*domain.BrandProfile, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var profile domain.BrandProfile
	if err := yaml.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if profile.Name == "" {
		return nil, nil
	}

	return &profile, nil
}

// Save writes the profile, creating the directory if needed.
func (s *FileStore) Save(profile domain.BrandProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("brand profile requires a name")
	}

	raw, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	return nil
}
