package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"ideabox-cli/internal/model"
)

const (
	// IdeasKey is the single KV entry holding the serialized collection.
	IdeasKey = "ideas"

	legacyFileName = "ideas.json"
)

// LoadResult reports how Load arrived at its value. Every result other than
// LoadOK yields an empty collection.
type LoadResult int

const (
	LoadOK LoadResult = iota
	LoadMissing
	LoadUnavailable
	LoadCorrupt
)

func (r LoadResult) String() string {
	switch r {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadUnavailable:
		return "unavailable"
	case LoadCorrupt:
		return "corrupt"
	}
	return "unknown"
}

type Store struct {
	Dir string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".ideabox")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) legacyPath() string {
	return filepath.Join(s.Dir, legacyFileName)
}

// Load reads the idea collection. It never fails: a missing key, an unopenable
// store and an undecodable value all produce an empty, non-nil slice.
func (s Store) Load(ctx context.Context) ([]model.Idea, LoadResult) {
	kv, err := s.OpenKV(ctx)
	if err != nil {
		return []model.Idea{}, LoadUnavailable
	}
	defer kv.Close()

	b, ok, err := kv.Get(ctx, IdeasKey)
	if err != nil {
		return []model.Idea{}, LoadUnavailable
	}
	if !ok {
		// One-time import of a plain ideas.json dropped into the store dir.
		legacy, err := os.ReadFile(s.legacyPath())
		if err != nil || len(legacy) == 0 {
			return []model.Idea{}, LoadMissing
		}
		ideas, err := Decode(legacy)
		if err != nil {
			return []model.Idea{}, LoadCorrupt
		}
		// If this write fails the next Load simply imports again.
		_ = kv.Put(ctx, IdeasKey, legacy)
		return ideas, LoadOK
	}

	ideas, err := Decode(b)
	if err != nil {
		return []model.Idea{}, LoadCorrupt
	}
	return ideas, LoadOK
}

// Save overwrites the stored collection. It normalizes ideas in place first,
// so the caller's slice equals what a later Load returns.
func (s Store) Save(ctx context.Context, ideas []model.Idea) error {
	for i := range ideas {
		ideas[i].Normalize()
	}
	b, err := Encode(ideas)
	if err != nil {
		return err
	}
	kv, err := s.OpenKV(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()
	return kv.Put(ctx, IdeasKey, b)
}

func Encode(ideas []model.Idea) ([]byte, error) {
	if ideas == nil {
		ideas = []model.Idea{}
	}
	return json.Marshal(ideas)
}

func Decode(b []byte) ([]model.Idea, error) {
	var out []model.Idea
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		// "null" is valid JSON but not a collection.
		return nil, errors.New("stored ideas value is not an array")
	}
	return out, nil
}
