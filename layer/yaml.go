package layer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadYAML builds a registry from a YAML list of layer records:
//
//	- id: 2
//	  name: Villages
//	  visible: true
func LoadYAML(data []byte) (*Registry, error) {
	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse layers: %w", err)
	}
	return NewRegistry(specs...)
}
