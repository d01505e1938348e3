package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

type LanguageStats struct {
	Total   int
	Sources map[string]int
}

// RunStats counts persisted jobs of a single run, per language and source.
type RunStats struct {
	languages map[string]*LanguageStats
}

func NewRunStats() *RunStats {
	return &RunStats{languages: make(map[string]*LanguageStats)}
}

func (s *RunStats) language(lang string) *LanguageStats {
	stats, ok := s.languages[lang]
	if !ok {
		stats = &LanguageStats{Sources: make(map[string]int)}
		s.languages[lang] = stats
	}
	return stats
}

func (s *RunStats) StartLanguage(lang string) {
	s.language(lang)
}

func (s *RunStats) RecordImport(lang, source string) {
	stats := s.language(lang)
	stats.Total++
	stats.Sources[source]++
}

func (s *RunStats) Total(lang string) int {
	if stats, ok := s.languages[lang]; ok {
		return stats.Total
	}
	return 0
}

func (s *RunStats) SourceTotal(lang, source string) int {
	if stats, ok := s.languages[lang]; ok {
		return stats.Sources[source]
	}
	return 0
}

func (s *RunStats) GrandTotal() int {
	return lo.SumBy(lo.Values(s.languages), func(stats *LanguageStats) int { return stats.Total })
}

// String renders the summary report. Languages without imports are left out.
func (s *RunStats) String() string {
	var sb strings.Builder
	line := strings.Repeat("=", 60)

	sb.WriteString(line + "\nIMPORT SUMMARY REPORT\n" + line + "\n")

	languages := lo.Keys(s.languages)
	sort.Strings(languages)

	for _, lang := range languages {
		stats := s.languages[lang]
		if stats.Total == 0 {
			continue
		}

		fmt.Fprintf(&sb, "\nLANGUAGE: %s\n", strings.ToUpper(lang))
		fmt.Fprintf(&sb, "   Total Imported: %d\n", stats.Total)
		sb.WriteString("   Breakdown by Source:\n")

		sources := lo.Entries(stats.Sources)
		sort.SliceStable(sources, func(i, j int) bool {
			if sources[i].Value != sources[j].Value {
				return sources[i].Value > sources[j].Value
			}
			return sources[i].Key < sources[j].Key
		})
		for _, source := range sources {
			fmt.Fprintf(&sb, "     - %s: %d\n", source.Key, source.Value)
		}
	}

	fmt.Fprintf(&sb, "\n%s\nTOTAL JOBS IMPORTED: %d\n%s\n", line, s.GrandTotal(), line)
	return sb.String()
}
