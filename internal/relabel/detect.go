package relabel

import (
	"fmt"
	"regexp"

	"github.com/dwtools/clustersort/internal/table"
)

// DefaultColumnPattern matches the header DataWarrior gives the cluster
// column in its exported cluster lists.
const DefaultColumnPattern = "Cluster No"

// DetectColumn returns the index of the first header cell matching pattern.
// No match yields a *table.SchemaError.
func DetectColumn(header []string, pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("column pattern: %w", err)
	}
	for i, h := range header {
		if re.MatchString(h) {
			return i, nil
		}
	}
	return 0, &table.SchemaError{Column: pattern}
}
