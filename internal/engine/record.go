package engine

import "github.com/verte-zerg/prosestat/internal/model"

// Record converts a result into the form archived by the run store.
// Occurrence contexts and per-chapter rates are not kept.
func (r Result) Record(corpusPath, rulesPath string) model.RunRecord {
	rec := model.RunRecord{
		RunSummary: model.RunSummary{
			CorpusPath: corpusPath,
			RulesPath:  rulesPath,
			Chapters:   r.Chapters,
			TotalWords: r.TotalWords,
			Flagged:    r.Flagged(),
			Skipped:    len(r.Skipped),
		},
	}
	for _, f := range r.Overuse {
		f.Distribution = nil
		rec.Overuse = append(rec.Overuse, f)
	}
	for _, f := range r.Rates {
		f.Benchmarks = nil
		f.Chapters = nil
		rec.Rates = append(rec.Rates, f)
	}
	for _, fam := range r.Families {
		rec.Variants = append(rec.Variants, model.VariantCount{
			FamilyID:  fam.FamilyID,
			Form:      fam.Preferred,
			Preferred: true,
			Count:     fam.PreferredCount,
			Severity:  fam.Severity,
		})
		for _, v := range fam.Variants {
			rec.Variants = append(rec.Variants, model.VariantCount{
				FamilyID: fam.FamilyID,
				Form:     v.Form,
				Count:    v.Count,
				Severity: fam.Severity,
			})
		}
	}
	return rec
}
