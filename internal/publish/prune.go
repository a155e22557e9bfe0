package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// PruneFiles removes the oldest files in dir matching pattern until at most
// keep remain. Names must sort chronologically (timestamped names do).
// Returns the removed paths.
func PruneFiles(dir, pattern string, keep int) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}

	if len(files) <= keep {
		return nil, nil
	}

	sort.Strings(files)

	var removed []string
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(f); err != nil {
			return removed, fmt.Errorf("remove %s: %w", f, err)
		}
		removed = append(removed, f)
	}
	return removed, nil
}
