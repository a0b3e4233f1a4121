package merging

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

type Summary struct {
	Files     int                 `json:"files" yaml:"files" toml:"files"`
	Bytes     uint64              `json:"bytes" yaml:"bytes" toml:"bytes"`
	Conflicts int                 `json:"conflicts" yaml:"conflicts" toml:"conflicts"`
	Failed    int                 `json:"failed" yaml:"failed" toml:"failed"`
	Counts    map[MergeStatus]int `json:"counts" yaml:"counts" toml:"counts"`
}

func Summarize(results []MergeResult) Summary {
	s := Summary{Files: len(results), Counts: map[MergeStatus]int{}}
	for _, r := range results {
		if r.Error != nil {
			s.Failed++
			continue
		}
		s.Counts[r.Status]++
		s.Conflicts += len(r.Conflicts)
		s.Bytes += uint64(len(r.Content))
	}
	return s
}

func (s Summary) String() string {
	parts := []string{}
	for _, status := range Statuses {
		if n := s.Counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(strings.ReplaceAll(string(status), "_", "-"))))
		}
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}

	msg := fmt.Sprintf("%s merged (%s)", english.Plural(s.Files, "file", ""), humanize.Bytes(s.Bytes))
	if len(parts) > 0 {
		msg += ": " + strings.Join(parts, ", ")
	}
	if s.Conflicts > 0 {
		msg += fmt.Sprintf(" with %s", english.Plural(s.Conflicts, "conflict", ""))
	}
	return msg
}
