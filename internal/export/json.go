package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// writeJSON persists the record slice as an indented document mirroring the
// record shape.
func writeJSON(path string, recs any) error {
	payload, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
