// Package overuse flags lemmas whose usage is concentrated in one chapter.
//
// Detect is a plain threshold classifier over a frequency table. It is not a
// statistical significance test and makes no claim beyond "the configured
// thresholds were met".
package overuse

import (
	"sort"

	"github.com/verte-zerg/prosestat/internal/model"
)

// Thresholds are the three inclusive limits a lemma must meet.
type Thresholds struct {
	// MinTotal is the book-wide count below which a lemma is ignored.
	MinTotal int `json:"min_total"`
	// MinChapter is the minimum count in the top chapter.
	MinChapter int `json:"min_chapter"`
	// MinShare is the minimum fraction of the total held by the top chapter.
	MinShare float64 `json:"min_share"`
}

// Detect returns one finding per lemma with total >= MinTotal, top chapter
// count >= MinChapter and top share >= MinShare. The top chapter is the one
// with the highest count; ties go to the earliest chapter in book order.
// Findings are ordered by total, highest first, then by lemma.
func Detect(table model.LemmaFrequencyTable, th Thresholds, severity model.Severity) []model.OveruseFinding {
	var findings []model.OveruseFinding
	for lemma, counts := range table.Lemmas {
		if counts.Total <= 0 || counts.Total < th.MinTotal {
			continue
		}
		top, topCount := topChapter(table.Chapters, counts.ByChapter)
		share := float64(topCount) / float64(counts.Total)
		if topCount < th.MinChapter || share < th.MinShare {
			continue
		}
		findings = append(findings, model.OveruseFinding{
			Lemma:        lemma,
			Total:        counts.Total,
			TopChapter:   top,
			TopCount:     topCount,
			Share:        share,
			Severity:     severity,
			Distribution: distribution(table.Chapters, counts.ByChapter),
		})
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Total == findings[j].Total {
			return findings[i].Lemma < findings[j].Lemma
		}
		return findings[i].Total > findings[j].Total
	})
	return findings
}

func topChapter(chapters []string, byChapter map[string]int) (string, int) {
	best, bestCount := "", 0
	for _, id := range chapters {
		if n := byChapter[id]; n > bestCount {
			best, bestCount = id, n
		}
	}
	return best, bestCount
}

func distribution(chapters []string, byChapter map[string]int) []model.ChapterCount {
	out := make([]model.ChapterCount, 0, len(byChapter))
	for _, id := range chapters {
		if n := byChapter[id]; n > 0 {
			out = append(out, model.ChapterCount{ChapterID: id, Count: n})
		}
	}
	return out
}
