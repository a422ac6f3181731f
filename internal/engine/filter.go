package engine

import "github.com/verte-zerg/prosestat/internal/model"

// Filter returns a copy of r keeping only findings tagged with sev.
// Frequencies and skipped rule sets are kept as they are.
func (r Result) Filter(sev model.Severity) Result {
	out := r
	out.Overuse = nil
	for _, f := range r.Overuse {
		if f.Severity == sev {
			out.Overuse = append(out.Overuse, f)
		}
	}
	out.Families = nil
	for _, f := range r.Families {
		if f.Severity == sev {
			out.Families = append(out.Families, f)
		}
	}
	out.Rates = nil
	for _, f := range r.Rates {
		if f.Severity == sev {
			out.Rates = append(out.Rates, f)
		}
	}
	out.Phrases = nil
	for _, f := range r.Phrases {
		if f.Severity == sev {
			out.Phrases = append(out.Phrases, f)
		}
	}
	return out
}

// Flagged counts findings that call for the writer's attention: overuse
// findings, families with variant use, rates over threshold and phrases.
func (r Result) Flagged() int {
	n := len(r.Overuse) + len(r.Phrases)
	for _, f := range r.Families {
		if f.HasVariants() {
			n++
		}
	}
	for _, f := range r.Rates {
		if f.Exceeds {
			n++
		}
	}
	return n
}
