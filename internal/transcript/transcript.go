// Package transcript exports a finished run's conversation record as a
// JSON file for inspection. Export is one-way; transcripts are never read
// back into a later run.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/campusworks/advisor-agent/internal/conversation"
)

// Record is the exported document: the run's identity and outcome beside
// the full turn sequence.
type Record struct {
	RunID      string              `json:"run_id,omitempty"`
	Outcome    string              `json:"outcome"`
	Iterations int                 `json:"iterations"`
	ExportedAt time.Time           `json:"exported_at"`
	Turns      []conversation.Turn `json:"turns"`
}

// Save writes the record as indented JSON, creating parent directories
// as needed.
func Save(path string, rec Record) error {
	if rec.ExportedAt.IsZero() {
		rec.ExportedAt = time.Now().UTC()
	}
	b, err := json.MarshalIndent(rec, "", " ")
	if err != nil {
		return fmt.Errorf("transcript: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("transcript: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("transcript: write %s: %w", path, err)
	}
	return nil
}
