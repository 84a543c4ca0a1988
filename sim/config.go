package sim

import (
	"encoding/json"
	"fmt"
	"os"
)

// Profile describes the simulated machine and the resilience tuning the
// host wires into the recovery layer.
type Profile struct {
	Name string `json:"name"`

	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
	ZMax float64 `json:"z_max"`

	StepsPerMMZ    float64 `json:"steps_per_mm_z"`
	DefaultFeedMMM int     `json:"default_feed_mmm"`

	OutageThreshold uint16  `json:"outage_threshold"`
	SaveIntervalMS  uint32  `json:"save_interval_ms"`
	MinZChange      float64 `json:"min_z_change"`
	ZRaise          float64 `json:"z_raise"`
	BackupPower     bool    `json:"backup_power"`
	RetractLength   float64 `json:"retract_length"`
	PurgeLength     float64 `json:"purge_length"`
	TravelFeedMMM   int     `json:"travel_feed_mmm"`
	DescendFeedMMM  int     `json:"descend_feed_mmm"`

	// Files pre-populates the simulated media.
	Files []string `json:"files"`
}

// DefaultProfile returns a profile with every default applied.
func DefaultProfile() Profile {
	p := Profile{}
	p.applyDefaults()
	return p
}

// LoadProfile reads a JSON machine profile and applies defaults for any
// omitted field.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a JSON machine profile.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	p.applyDefaults()
	return p, nil
}

func (p *Profile) applyDefaults() {
	if p.Name == "" {
		p.Name = "sim"
	}
	if p.XMax == 0 {
		p.XMax = 220
	}
	if p.YMax == 0 {
		p.YMax = 220
	}
	if p.ZMax == 0 {
		p.ZMax = 250
	}
	if p.StepsPerMMZ == 0 {
		p.StepsPerMMZ = 400
	}
	if p.DefaultFeedMMM == 0 {
		p.DefaultFeedMMM = 3000
	}
	if p.OutageThreshold == 0 {
		p.OutageThreshold = 2200
	}
	if p.SaveIntervalMS == 0 {
		p.SaveIntervalMS = 60000
	}
	if p.MinZChange == 0 {
		p.MinZChange = 0.05
	}
	if p.ZRaise == 0 {
		p.ZRaise = 2
	}
	if p.RetractLength == 0 {
		p.RetractLength = 3
	}
	if p.TravelFeedMMM == 0 {
		p.TravelFeedMMM = 3000
	}
	if p.DescendFeedMMM == 0 {
		p.DescendFeedMMM = 200
	}
}
