package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Name     string  `json:"name"`
	Source   string  `json:"source"`
	Image    string  `json:"image"`
	Coverage float64 `json:"coverage"`
	Average  string  `json:"average_color,omitempty"`
}

// WriteManifest writes the successful results as JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:     r.Name,
			Source:   r.Source,
			Image:    r.Image,
			Coverage: r.Coverage,
			Average:  r.Average,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
