package ideas

import "ideabox-cli/internal/model"

type Group struct {
	Category string       `json:"category"`
	Ideas    []model.Idea `json:"ideas"`
}

// GroupByCategory groups ideas by category. Categories appear in first-seen
// order and ideas keep collection order within each group. Nothing is cached.
func GroupByCategory(ideas []model.Idea) []Group {
	out := []Group{}
	pos := map[string]int{}
	for _, it := range ideas {
		i, ok := pos[it.Category]
		if !ok {
			i = len(out)
			pos[it.Category] = i
			out = append(out, Group{Category: it.Category})
		}
		out[i].Ideas = append(out[i].Ideas, it)
	}
	return out
}

func Categories(ideas []model.Idea) []string {
	groups := GroupByCategory(ideas)
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Category
	}
	return out
}

func (r *Repository) Categories() []string { return Categories(r.ideas) }
