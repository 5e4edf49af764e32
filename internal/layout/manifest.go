package layout

import (
	"encoding/json"
	"os"
)

// Manifest summarizes a batch run: per-file outcomes plus how often each
// region was used across the whole run.
type Manifest struct {
	Atlas       string         `json:"atlas,omitempty"`
	Files       []Result       `json:"files"`
	RegionUsage map[string]int `json:"region_usage"`
}

// WriteManifest writes manifest.json for the run.
func WriteManifest(path, atlas string, results []Result) error {
	m := Manifest{
		Atlas:       atlas,
		Files:       results,
		RegionUsage: make(map[string]int),
	}
	for _, r := range results {
		for _, s := range r.Shells {
			if s.Region != "" {
				m.RegionUsage[s.Region]++
			}
		}
	}

	data, err := json.MarshalIndent(&m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
