package freq

import (
	"context"
	"reflect"
	"testing"

	"github.com/verte-zerg/prosestat/internal/model"
)

func lemmaChapter(id string, lemmas ...string) model.Chapter {
	tokens := make([]model.Token, len(lemmas))
	for i, l := range lemmas {
		tokens[i] = model.Token{Text: l, Lemma: l, Line: 1, Offset: i}
	}
	return model.Chapter{ID: id, Tokens: tokens, WordCount: len(tokens)}
}

func sampleCorpus() model.Corpus {
	return model.Corpus{Chapters: []model.Chapter{
		lemmaChapter("chapter_001", "still", "she", "smile", "still"),
		lemmaChapter("chapter_002", "smile", "he"),
		lemmaChapter("chapter_003", "still"),
	}}
}

func TestAggregate(t *testing.T) {
	table, err := Aggregate(context.Background(), sampleCorpus(), []string{"still", "smile", "glance"})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if got := table.Lemmas["still"].Total; got != 3 {
		t.Fatalf("expected still total 3, got %d", got)
	}
	if got := Count(table, "still", "chapter_001"); got != 2 {
		t.Fatalf("expected 2 in chapter_001, got %d", got)
	}
	if got := Count(table, "smile", "chapter_003"); got != 0 {
		t.Fatalf("expected missing chapter to read as 0, got %d", got)
	}
	glance, ok := table.Lemmas["glance"]
	if !ok || glance.Total != 0 {
		t.Fatalf("expected zero entry for absent focus lemma, got %+v (present=%v)", glance, ok)
	}
	if _, ok := table.Lemmas["she"]; ok {
		t.Fatalf("non-focus lemma counted")
	}
	if !reflect.DeepEqual(table.Chapters, []string{"chapter_001", "chapter_002", "chapter_003"}) {
		t.Fatalf("unexpected chapter order: %v", table.Chapters)
	}
}

func TestAggregate_SumsMatchTotals(t *testing.T) {
	table, err := Aggregate(context.Background(), sampleCorpus(), []string{"still", "smile", "he"})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	for lemma, counts := range table.Lemmas {
		sum := 0
		for _, n := range counts.ByChapter {
			sum += n
		}
		if sum != counts.Total {
			t.Fatalf("%s: chapter sum %d != total %d", lemma, sum, counts.Total)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	c := sampleCorpus()
	focus := []string{"still", "smile"}
	a, err := Aggregate(context.Background(), c, focus)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	b, err := Aggregate(context.Background(), c, focus)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("aggregation is not deterministic")
	}
}

func TestAggregate_EmptyFocus(t *testing.T) {
	table, err := Aggregate(context.Background(), sampleCorpus(), nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(table.Lemmas) != 0 {
		t.Fatalf("expected empty table, got %v", table.Lemmas)
	}
}

func TestAggregate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Aggregate(ctx, sampleCorpus(), []string{"still"}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
