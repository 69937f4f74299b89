package authz

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"docvault/internal/domain/models"
)

//go:embed defaults.yaml
var defaultsFile []byte

// legacyProfile is the typed shape of the embedded defaults file.
type legacyProfile struct {
	Version      int                 `yaml:"version"`
	Capabilities []models.Capability `yaml:"capabilities"`
}

// LoadLegacyDefaults parses the embedded capability profile applied to users
// with no active groups.
func LoadLegacyDefaults() (models.CapabilitySet, error) {
	var profile legacyProfile
	if err := yaml.Unmarshal(defaultsFile, &profile); err != nil {
		return nil, fmt.Errorf("parse legacy defaults profile: %w", err)
	}
	if profile.Version != 1 {
		return nil, fmt.Errorf("unsupported legacy defaults profile version %d", profile.Version)
	}

	known := make(map[models.Capability]bool, len(models.AllCapabilities))
	for _, c := range models.AllCapabilities {
		known[c] = true
	}

	set := make(models.CapabilitySet, len(profile.Capabilities))
	for _, c := range profile.Capabilities {
		if !known[c] {
			return nil, fmt.Errorf("unknown capability %q in legacy defaults profile", c)
		}
		set[c] = true
	}
	return set, nil
}
