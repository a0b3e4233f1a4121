package markers

import (
	"strings"
)

// Region locates a marked-up conflict block in a text. Lines are 1-indexed.
type Region struct {
	StartLine int    `json:"startLine" yaml:"startLine" toml:"startLine"`
	EndLine   int    `json:"endLine" yaml:"endLine" toml:"endLine"`
	Message   string `json:"message" yaml:"message" toml:"message"`
}

// Regions scans content for conflict blocks. Any line opening with seven '<'
// starts a block and the next line opening with seven '>' ends it, so markers
// written by other tools are found too.
func Regions(content string) []Region {
	var regions []Region
	lines := strings.Split(content, "\n")

	var inConflict bool
	var startLine int

	for i, line := range lines {
		if strings.HasPrefix(line, "<<<<<<<") {
			inConflict = true
			startLine = i + 1
		} else if strings.HasPrefix(line, ">>>>>>>") && inConflict {
			regions = append(regions, Region{
				StartLine: startLine,
				EndLine:   i + 1,
				Message:   "Overlapping changes between remote and local",
			})
			inConflict = false
		}
	}

	return regions
}
