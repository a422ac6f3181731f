package model

import "time"

// RunSummary describes one archived analysis run.
type RunSummary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	CorpusPath string    `json:"corpus"`
	RulesPath  string    `json:"rules"`
	Chapters   int       `json:"chapters"`
	TotalWords int       `json:"total_words"`
	Flagged    int       `json:"flagged"`
	Skipped    int       `json:"skipped"`
}

// VariantCount is the archived usage of one family form.
type VariantCount struct {
	FamilyID  string   `json:"family"`
	Form      string   `json:"form"`
	Preferred bool     `json:"preferred"`
	Count     int      `json:"count"`
	Severity  Severity `json:"severity"`
}

// RunRecord is a run summary with the findings kept in the archive.
// Occurrence contexts are not archived.
type RunRecord struct {
	RunSummary
	Overuse  []OveruseFinding `json:"overuse"`
	Rates    []RateFinding    `json:"rates"`
	Variants []VariantCount   `json:"variants"`
}

// RatePoint is a watched word's rate in one archived run.
type RatePoint struct {
	RunID      string    `json:"run"`
	CreatedAt  time.Time `json:"created_at"`
	Count      int       `json:"count"`
	TotalWords int       `json:"total_words"`
	Rate       float64   `json:"rate"`
	Threshold  float64   `json:"threshold"`
	Exceeds    bool      `json:"exceeds_threshold"`
}
