// Package family checks a manuscript against canonical spelling families:
// for every configured preferred form it counts the preferred spelling and
// collects each use of a registered variant with its context.
package family

import (
	"context"
	"fmt"

	"github.com/verte-zerg/prosestat/internal/match"
	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/snippet"
	"github.com/verte-zerg/prosestat/internal/textnorm"
)

// RuleSet names the family rule set in configuration errors.
const RuleSet = "families"

// formRef points a matcher pattern back at its family. Variant is -1 for
// the preferred form.
type formRef struct {
	family  int
	variant int
}

// Registry is a validated, immutable set of style families.
type Registry struct {
	families []model.StyleFamily
	refs     []formRef
	matcher  *match.Matcher
	norm     *textnorm.Normalizer
}

// NewRegistry validates families and compiles one matcher for all of their
// forms. A form may belong to only one family and appear once in it.
func NewRegistry(families []model.StyleFamily, norm *textnorm.Normalizer) (*Registry, error) {
	r := &Registry{
		families: make([]model.StyleFamily, 0, len(families)),
		norm:     norm,
	}
	owner := make(map[string]string)
	var patterns []string

	for i, fam := range families {
		preferred := norm.Phrase(fam.Preferred)
		if preferred == "" {
			return nil, &model.ConfigError{RuleSet: RuleSet, Field: fmt.Sprintf("family %d", i+1), Reason: "preferred form is empty"}
		}
		if fam.ID == "" {
			fam.ID = preferred
		}
		if len(fam.Variants) == 0 {
			return nil, &model.ConfigError{RuleSet: RuleSet, Field: fam.Preferred, Reason: "no variants configured"}
		}

		forms := append([]string{fam.Preferred}, fam.Variants...)
		for j, form := range forms {
			key := norm.Phrase(form)
			if key == "" {
				return nil, &model.ConfigError{RuleSet: RuleSet, Field: fam.Preferred, Reason: "variant is empty"}
			}
			if prev, ok := owner[key]; ok {
				if prev == fam.ID {
					return nil, &model.ConfigError{RuleSet: RuleSet, Field: fam.Preferred, Reason: fmt.Sprintf("form %q is listed twice", form)}
				}
				return nil, &model.ConfigError{
					RuleSet: RuleSet,
					Field:   fam.Preferred,
					Reason:  fmt.Sprintf("form %q already belongs to family %q", form, prev),
				}
			}
			owner[key] = fam.ID
			patterns = append(patterns, key)
			r.refs = append(r.refs, formRef{family: len(r.families), variant: j - 1})
		}
		r.families = append(r.families, fam)
	}
	r.matcher = match.New(patterns)
	return r, nil
}

// Families returns the validated families in configuration order.
func (r *Registry) Families() []model.StyleFamily {
	out := make([]model.StyleFamily, len(r.families))
	copy(out, r.families)
	return out
}

// Scan reports every family in configuration order. Each variant is listed,
// including unused ones, with the contexts of its occurrences. Matches never
// span two chapters.
func (r *Registry) Scan(ctx context.Context, corpus model.Corpus, opts snippet.Options) ([]model.FamilyReport, error) {
	reports := make([]model.FamilyReport, len(r.families))
	for i, fam := range r.families {
		groups := make([]model.VariantGroup, len(fam.Variants))
		for j, v := range fam.Variants {
			groups[j] = model.VariantGroup{Form: v, Occurrences: []model.VariantOccurrence{}}
		}
		reports[i] = model.FamilyReport{
			FamilyID:  fam.ID,
			Preferred: fam.Preferred,
			Severity:  fam.Severity,
			Variants:  groups,
		}
	}

	for _, ch := range corpus.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hits := r.matcher.ScanChapter(ch, r.norm)
		if len(hits) == 0 {
			continue
		}
		var runes []rune
		if ch.Text != "" {
			runes = []rune(ch.Text)
		}
		for _, hit := range hits {
			ref := r.refs[hit.Pattern]
			rep := &reports[ref.family]
			if ref.variant < 0 {
				rep.PreferredCount++
				continue
			}
			group := &rep.Variants[ref.variant]
			group.Occurrences = append(group.Occurrences, model.VariantOccurrence{
				FamilyID:  rep.FamilyID,
				Form:      group.Form,
				Text:      match.Surface(ch.Tokens, hit.First, hit.Last),
				ChapterID: ch.ID,
				Line:      ch.Tokens[hit.First].Line,
				Snippet:   snippet.Chapter(ch, runes, hit.First, hit.Last, opts),
			})
			group.Count++
		}
	}
	return reports, nil
}
