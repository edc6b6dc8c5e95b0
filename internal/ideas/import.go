package ideas

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ideabox-cli/internal/model"
)

type ImportMode int

const (
	// ImportMerge appends ideas whose titles are not present yet.
	ImportMerge ImportMode = iota
	// ImportReplace swaps the whole collection for the imported one.
	ImportReplace
)

type ImportResult struct {
	Added   int      `json:"added"`
	Skipped []string `json:"skipped"`
}

// Import adds ideas from an export file. Ideas with a blank title or category
// are always skipped. Merge mode also skips titles already present, including
// repeats within the file; replace mode keeps the file as is, duplicates and
// all, and lookups then resolve to the first match.
func (r *Repository) Import(ctx context.Context, in []model.Idea, mode ImportMode) ImportResult {
	res := ImportResult{Skipped: []string{}}
	next := r.ideas
	if mode == ImportReplace {
		next = make([]model.Idea, 0, len(in))
	}
	seen := map[string]bool{}
	for _, it := range next {
		seen[it.Title] = true
	}
	for _, it := range in {
		it = it.Clone()
		it.Title = strings.TrimSpace(it.Title)
		it.Category = strings.TrimSpace(it.Category)
		if it.Title == "" || it.Category == "" || (mode == ImportMerge && seen[it.Title]) {
			res.Skipped = append(res.Skipped, it.Title)
			continue
		}
		if it.IsChat() && it.Messages == nil {
			it.Messages = []string{}
		}
		seen[it.Title] = true
		next = append(next, it)
		res.Added++
	}
	if res.Added == 0 && mode == ImportMerge {
		return res
	}
	r.ideas = next
	r.persist(ctx, "import", zap.Int("added", res.Added), zap.Int("skipped", len(res.Skipped)))
	return res
}
