package container

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"dockpanel/internal/errors"
)

// ComposeService is the subset of a compose service the panel reports on
type ComposeService struct {
	Image string   `yaml:"image"`
	Ports []string `yaml:"ports"`
}

// ComposeFile represents an uploaded docker-compose.yml
type ComposeFile struct {
	Version  string                    `yaml:"version"`
	Services map[string]ComposeService `yaml:"services"`
}

// ParseCompose checks that body is a YAML document with a services mapping.
// The original bytes, not a re-encoding, are what gets written to disk.
func ParseCompose(body []byte) (*ComposeFile, error) {
	if strings.TrimSpace(string(body)) == "" {
		return nil, errors.InvalidCompose("compose file is empty", nil)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(body, &raw); err != nil {
		return nil, errors.InvalidCompose("compose file is not valid YAML", err)
	}

	node, ok := raw["services"]
	if !ok {
		return nil, errors.InvalidCompose("compose file has no services section", nil)
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.InvalidCompose("services must be a mapping", nil)
	}

	var compose ComposeFile
	if err := yaml.Unmarshal(body, &compose); err != nil {
		return nil, errors.InvalidCompose("compose file could not be decoded", err)
	}

	return &compose, nil
}

// ServiceNames returns the declared service names in sorted order
func (c *ComposeFile) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
