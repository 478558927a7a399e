// Package wpconfig loads the solver's non-inventory inputs — the truck
// envelope, department priority table, and (always-empty, in the universal
// mode) KB pattern list — from a YAML config file.
package wpconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

// Config is the YAML-serializable solver configuration.
type Config struct {
	TruckWidth    float64          `yaml:"truckWidth"`
	TruckLength   float64          `yaml:"truckLength"`
	TruckHeight   float64          `yaml:"truckHeight"`
	DeptPriority  map[string]int   `yaml:"deptPriority"`
	KBPatternRefs []KBPatternEntry `yaml:"kbPatterns"`
}

// KBPatternEntry is the on-disk shape of a reserved KB recipe hook.
type KBPatternEntry struct {
	Name   string   `yaml:"name"`
	Groups []string `yaml:"groups"`
}

// Default returns the documented defaults: truckWidth=98, truckHeight=110,
// no configured length (callers must supply one), empty priority/patterns.
func Default() Config {
	return Config{
		TruckWidth:  98,
		TruckHeight: 110,
	}
}

// Load reads and parses a YAML config file, filling in any zero-valued
// fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var onDisk Config
	if err := yaml.Unmarshal(b, &onDisk); err != nil {
		return cfg, err
	}
	if onDisk.TruckWidth > 0 {
		cfg.TruckWidth = onDisk.TruckWidth
	}
	if onDisk.TruckLength > 0 {
		cfg.TruckLength = onDisk.TruckLength
	}
	if onDisk.TruckHeight > 0 {
		cfg.TruckHeight = onDisk.TruckHeight
	}
	if onDisk.DeptPriority != nil {
		cfg.DeptPriority = onDisk.DeptPriority
	}
	if onDisk.KBPatternRefs != nil {
		cfg.KBPatternRefs = onDisk.KBPatternRefs
	}
	return cfg, nil
}

// Envelope converts the loaded config into a wpcore.TruckEnvelope.
func (c Config) Envelope() wpcore.TruckEnvelope {
	return wpcore.TruckEnvelope{Width: c.TruckWidth, Length: c.TruckLength, Height: c.TruckHeight}
}

// KBPatterns converts the on-disk entries into wpcore.KBPattern values.
func (c Config) KBPatterns() []wpcore.KBPattern {
	out := make([]wpcore.KBPattern, 0, len(c.KBPatternRefs))
	for _, e := range c.KBPatternRefs {
		out = append(out, wpcore.KBPattern{Name: e.Name, Groups: e.Groups})
	}
	return out
}
