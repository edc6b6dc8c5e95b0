package store

import (
	"context"
	"testing"

	"ideabox-cli/internal/model"
)

func TestDoctor_CleanStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	if err := s.Save(ctx, sampleIdeas()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rep := s.Doctor(ctx)
	if rep.Load != "ok" || rep.Count != 2 || len(rep.Issues) != 0 || rep.HasErrors() {
		t.Fatalf("unexpected report: %#v", rep)
	}
}

func TestDoctor_CorruptStoreIsAnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	kv, err := OpenSQLiteKV(ctx, s)
	if err != nil {
		t.Fatalf("OpenSQLiteKV: %v", err)
	}
	if err := kv.Put(ctx, IdeasKey, []byte("[")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_ = kv.Close()

	rep := s.Doctor(ctx)
	if !rep.HasErrors() || rep.Issues[0].Code != "store_corrupt" {
		t.Fatalf("expected store_corrupt error; got %#v", rep)
	}
}

func TestCheckIdeas_Warnings(t *testing.T) {
	t.Parallel()

	ideas := []model.Idea{
		model.NewIdea("A", "x", model.VariantChat),
		model.NewIdea("A", "y", model.VariantChat),
		model.NewIdea(" ", "x", model.VariantChat),
		model.NewIdea("B", "", model.VariantFields),
	}
	issues := CheckIdeas(ideas)

	codes := map[string]int{}
	for _, it := range issues {
		if it.Level != DoctorIssueLevelWarn {
			t.Fatalf("expected only warnings; got %#v", it)
		}
		codes[it.Code]++
	}
	if codes["duplicate_title"] != 1 || codes["blank_title"] != 1 || codes["blank_category"] != 1 {
		t.Fatalf("unexpected issue codes: %#v", codes)
	}
	for _, it := range issues {
		if it.Code == "duplicate_title" && it.Index != 1 {
			t.Fatalf("expected duplicate reported at index 1; got %#v", it)
		}
	}
}
