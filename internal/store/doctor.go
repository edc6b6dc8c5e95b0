package store

import (
	"context"
	"strconv"
	"strings"

	"ideabox-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Index   int              `json:"index"`
	Title   string           `json:"title,omitempty"`
}

type DoctorReport struct {
	Path   string        `json:"path"`
	Load   string        `json:"load"`
	Count  int           `json:"count"`
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor loads the store and reports problems the UI would otherwise hide:
// unreadable or corrupt values, duplicate titles, and blank required fields.
func (s Store) Doctor(ctx context.Context) DoctorReport {
	ideas, res := s.Load(ctx)
	rep := DoctorReport{
		Path:   s.SQLitePath(),
		Load:   res.String(),
		Count:  len(ideas),
		Issues: []DoctorIssue{},
	}
	switch res {
	case LoadUnavailable:
		rep.Issues = append(rep.Issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "store_unavailable",
			Message: "could not open or read the store; the TUI will start empty",
		})
	case LoadCorrupt:
		rep.Issues = append(rep.Issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "store_corrupt",
			Message: "stored value is not a JSON array of ideas; the TUI will start empty and the next save overwrites it",
		})
	}
	rep.Issues = append(rep.Issues, CheckIdeas(ideas)...)
	return rep
}

func CheckIdeas(ideas []model.Idea) []DoctorIssue {
	var issues []DoctorIssue
	seen := map[string]int{}
	for i, it := range ideas {
		if strings.TrimSpace(it.Title) == "" {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "blank_title",
				Message: "idea has an empty title",
				Index:   i,
			})
		}
		if strings.TrimSpace(it.Category) == "" {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "blank_category",
				Message: "idea has an empty category",
				Index:   i,
				Title:   it.Title,
			})
		}
		if first, ok := seen[it.Title]; ok {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "duplicate_title",
				Message: "title also used at index " + strconv.Itoa(first) + "; lookups resolve to the first one",
				Index:   i,
				Title:   it.Title,
			})
			continue
		}
		seen[it.Title] = i
	}
	return issues
}
