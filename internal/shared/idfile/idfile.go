// Package idfile reads and writes line-delimited decimal ID files.
// Files hold one ID per line and are always rewritten as a full sorted
// snapshot, never appended to.
package idfile

import (
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Read parses a line-delimited decimal ID file. A missing file is an
// empty set, not an error. Blank and non-numeric lines are skipped.
func Read(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	ids := lo.FilterMap(lines, func(line string, _ int) (int64, bool) {
		line = strings.TrimSpace(line)
		if line == "" {
			return 0, false
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	})

	return ids, nil
}

// Write overwrites the file with a deduplicated snapshot sorted
// ascending numerically.
func Write(path string, ids []int64) error {
	ids = lo.Uniq(ids)
	slices.Sort(ids)

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteString("\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}
