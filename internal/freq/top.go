package freq

import (
	"sort"

	"github.com/verte-zerg/prosestat/internal/model"
)

// Totals lists every lemma of the table by total count, highest first.
// Ties are broken by lemma.
func Totals(table model.LemmaFrequencyTable) []model.LemmaTotal {
	items := make([]model.LemmaTotal, 0, len(table.Lemmas))
	for lemma, counts := range table.Lemmas {
		items = append(items, model.LemmaTotal{Lemma: lemma, Total: counts.Total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Total == items[j].Total {
			return items[i].Lemma < items[j].Lemma
		}
		return items[i].Total > items[j].Total
	})
	return items
}

// Top returns the n most frequent lemmas that occur at least once.
func Top(table model.LemmaFrequencyTable, n int) []model.LemmaTotal {
	if n <= 0 || len(table.Lemmas) == 0 {
		return nil
	}
	all := Totals(table)
	out := make([]model.LemmaTotal, 0, n)
	for _, item := range all {
		if item.Total == 0 || len(out) == n {
			break
		}
		out = append(out, item)
	}
	return out
}
