package export

import (
	"encoding/gob"
	"fmt"
	"os"
)

// writeGob persists the record slice in Go's native binary serialization,
// the counterpart of the original tooling's pickle output.
func writeGob(path string, recs any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // checked via the close below

	if err := gob.NewEncoder(f).Encode(recs); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return f.Close()
}
