package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"ideabox-cli/internal/model"
)

const AllFileName = "ideas.json"

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// Marshal renders v as pretty JSON with a two-space indent.
func Marshal(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// FileName returns "<title><ext>" with path separators and other characters
// unsafe in file names replaced.
func FileName(title, ext string) string {
	r := strings.NewReplacer(
		"/", "-", `\`, "-", ":", "-", "*", "-", "?", "-",
		`"`, "-", "<", "-", ">", "-", "|", "-", "\x00", "",
	)
	name := strings.TrimSpace(r.Replace(title))
	if name == "" || name == "." || name == ".." {
		name = "idea"
	}
	return name + ext
}

func WriteIdea(it model.Idea, toDir string, opt WriteOptions) (WriteResult, error) {
	b, err := Marshal(it)
	if err != nil {
		return WriteResult{}, err
	}
	return writeInto(toDir, FileName(it.Title, ".json"), b, opt)
}

func WriteAll(ideas []model.Idea, toDir string, opt WriteOptions) (WriteResult, error) {
	if ideas == nil {
		ideas = []model.Idea{}
	}
	b, err := Marshal(ideas)
	if err != nil {
		return WriteResult{}, err
	}
	return writeInto(toDir, AllFileName, b, opt)
}

func WriteIdeaMarkdown(it model.Idea, toDir string, opt WriteOptions) (WriteResult, error) {
	return writeInto(toDir, FileName(it.Title, ".md"), []byte(RenderMarkdown(it)), opt)
}

// ReadFile parses an export: either one idea object or an array of them.
func ReadFile(path string) ([]model.Idea, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) ([]model.Idea, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("empty export file")
	}
	if b[0] == '[' {
		var out []model.Idea
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var it model.Idea
	if err := json.Unmarshal(b, &it); err != nil {
		return nil, err
	}
	return []model.Idea{it}, nil
}

func writeInto(toDir, name string, b []byte, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		toDir = "."
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	path := filepath.Join(toDir, name)
	if err := writeFile(path, b, opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
