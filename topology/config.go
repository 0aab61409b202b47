package topology

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/strand/types"
)

// Config is the YAML representation of a static topology.
//
// Example:
//
//	hosts:
//	  - 10.0.0.1:9042
//	  - 10.0.0.2:9042
//	  - 10.0.0.3:9042
//	replication:
//	  default: 3
//	  keyspaces:
//	    app: 3
//	    audit: 5
type Config struct {
	// Hosts lists coordinator endpoints in selection order.
	Hosts []string `yaml:"hosts"`

	// Replication configures replication factors.
	Replication ReplicationConfig `yaml:"replication"`
}

// ReplicationConfig holds replication factor settings.
type ReplicationConfig struct {
	// Default is the factor for keyspaces without an explicit entry.
	// Zero means 1.
	Default int `yaml:"default"`

	// Keyspaces maps keyspace names to replication factors.
	Keyspaces map[string]int `yaml:"keyspaces"`
}

// Validate checks the configuration for obvious mistakes.
//
// Returns:
//   - error: Validation error, or nil if valid
func (c *Config) Validate() error {
	if len(c.Hosts) == 0 {
		return errors.New("topology: at least one host is required")
	}
	for _, h := range c.Hosts {
		if h == "" {
			return errors.New("topology: host entries cannot be empty")
		}
	}
	if c.Replication.Default < 0 {
		return errors.New("topology: default replication factor cannot be negative")
	}
	for ks, rf := range c.Replication.Keyspaces {
		if rf < 1 {
			return fmt.Errorf("topology: keyspace %q replication factor must be at least 1", ks)
		}
	}

	return nil
}

// Static builds a Static topology from the configuration.
//
// Returns:
//   - *Static: The topology
//   - error: Validation error, or nil
func (c *Config) Static() (*Static, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	hosts := make([]types.Host, len(c.Hosts))
	for i, h := range c.Hosts {
		hosts[i] = types.Host(h)
	}

	opts := make([]StaticOption, 0, len(c.Replication.Keyspaces)+1)
	if c.Replication.Default >= 1 {
		opts = append(opts, WithDefaultReplicationFactor(c.Replication.Default))
	}
	for ks, rf := range c.Replication.Keyspaces {
		opts = append(opts, WithReplicationFactor(ks, rf))
	}

	return NewStatic(hosts, opts...), nil
}

// Load parses a YAML topology document.
//
// Parameters:
//   - data: Raw YAML bytes
//
// Returns:
//   - *Static: The topology
//   - error: Parse or validation error
func Load(data []byte) (*Static, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("topology: parsing config: %w", err)
	}

	return cfg.Static()
}

// LoadFile reads and parses a YAML topology file.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - *Static: The topology
//   - error: Read, parse, or validation error
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("topology: reading config: %w", err)
	}

	return Load(data)
}
