package activity

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// profileFile is the YAML document layout for profile overrides.
// Durations use Go duration syntax ("30s", "1m").
type profileFile struct {
	Profiles map[string]profileEntry `yaml:"profiles"`
}

type profileEntry struct {
	MaxSpeed          *float64 `yaml:"maxSpeed"`
	MaxCaloriesPerMin *float64 `yaml:"maxCaloriesPerMin"`
	MinStride         *float64 `yaml:"minStride"`
	MaxStride         *float64 `yaml:"maxStride"`
	StepLength        *float64 `yaml:"stepLength"`
	SplitDistance     *float64 `yaml:"splitDistance"`
	StalenessWindow   *string  `yaml:"stalenessWindow"`
}

// LoadProfiles reads a YAML profile file and returns the full profile set:
// built-in defaults with the file's per-activity overrides applied.
// Activity keys are matched with ParseType ("running", "cycling", ...).
func LoadProfiles(path string) (map[Type]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseProfiles(data)
}

func parseProfiles(data []byte) (map[Type]Profile, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid profile file: %w", err)
	}

	profiles := map[Type]Profile{
		TypeWalking: DefaultProfile(TypeWalking),
		TypeHiking:  DefaultProfile(TypeHiking),
		TypeRunning: DefaultProfile(TypeRunning),
		TypeCycling: DefaultProfile(TypeCycling),
	}

	for name, entry := range file.Profiles {
		t, ok := ParseType(name)
		if !ok {
			return nil, fmt.Errorf("unknown activity %q in profile file", name)
		}

		p := profiles[t]
		if entry.MaxSpeed != nil {
			p.MaxSpeed = *entry.MaxSpeed
		}
		if entry.MaxCaloriesPerMin != nil {
			p.MaxCaloriesPerMin = *entry.MaxCaloriesPerMin
		}
		if entry.MinStride != nil {
			p.MinStride = *entry.MinStride
		}
		if entry.MaxStride != nil {
			p.MaxStride = *entry.MaxStride
		}
		if entry.StepLength != nil {
			p.StepLength = *entry.StepLength
		}
		if entry.SplitDistance != nil {
			p.SplitDistance = *entry.SplitDistance
		}
		if entry.StalenessWindow != nil {
			d, err := time.ParseDuration(*entry.StalenessWindow)
			if err != nil {
				return nil, fmt.Errorf("activity %q: invalid stalenessWindow: %w", name, err)
			}
			p.StalenessWindow = d
		}
		profiles[t] = p
	}

	return profiles, nil
}
