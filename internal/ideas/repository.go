// Package ideas holds the in-memory idea collection and every mutation on it.
//
// Each successful mutation is followed by a full save. A failed save keeps the
// in-memory change; the error is logged and kept in LastSaveErr.
package ideas

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ideabox-cli/internal/model"
	"ideabox-cli/internal/store"
)

// Persister is the storage the repository loads from and saves to.
// store.Store satisfies it.
type Persister interface {
	Load(ctx context.Context) ([]model.Idea, store.LoadResult)
	Save(ctx context.Context, ideas []model.Idea) error
}

type Repository struct {
	p      Persister
	logger *zap.Logger

	ideas       []model.Idea
	loadResult  store.LoadResult
	lastSaveErr error
}

func Open(ctx context.Context, p Persister, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{p: p, logger: logger.Named("ideas")}
	r.ideas, r.loadResult = p.Load(ctx)
	if r.ideas == nil {
		r.ideas = []model.Idea{}
	}
	if r.loadResult != store.LoadOK && r.loadResult != store.LoadMissing {
		r.logger.Warn("store load failed; starting empty", zap.Stringer("result", r.loadResult))
	}
	return r
}

func (r *Repository) LoadResult() store.LoadResult { return r.loadResult }

// LastSaveErr is the error of the most recent save, or nil if it succeeded.
func (r *Repository) LastSaveErr() error { return r.lastSaveErr }

func (r *Repository) Len() int { return len(r.ideas) }

// All returns a copy of the collection in insertion order.
func (r *Repository) All() []model.Idea {
	out := make([]model.Idea, len(r.ideas))
	for i := range r.ideas {
		out[i] = r.ideas[i].Clone()
	}
	return out
}

// Find returns the first idea with the given title.
func (r *Repository) Find(title string) (model.Idea, bool) {
	i := r.index(title)
	if i < 0 {
		return model.Idea{}, false
	}
	return r.ideas[i].Clone(), true
}

func (r *Repository) index(title string) int {
	for i := range r.ideas {
		if r.ideas[i].Title == title {
			return i
		}
	}
	return -1
}

// Reload replaces the in-memory collection with the stored one. Loads that
// come back unavailable or corrupt leave memory untouched.
func (r *Repository) Reload(ctx context.Context) store.LoadResult {
	ideas, res := r.p.Load(ctx)
	switch res {
	case store.LoadOK, store.LoadMissing:
		r.ideas = ideas
		if r.ideas == nil {
			r.ideas = []model.Idea{}
		}
	default:
		r.logger.Warn("reload skipped", zap.Stringer("result", res))
	}
	return res
}

func (r *Repository) Create(ctx context.Context, title, category string, v model.Variant) (model.Idea, error) {
	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	if err := validateStruct(titleCategory{Title: title, Category: category}); err != nil {
		return model.Idea{}, err
	}
	if r.index(title) >= 0 {
		return model.Idea{}, fmt.Errorf("%w: %s", ErrDuplicateTitle, title)
	}
	it := model.NewIdea(title, category, v)
	r.ideas = append(r.ideas, it)
	r.persist(ctx, "create", zap.String("title", title), zap.String("category", category))
	return it.Clone(), nil
}

func (r *Repository) Delete(ctx context.Context, title string) error {
	i := r.index(title)
	if i < 0 {
		return notFound(title)
	}
	r.ideas = append(r.ideas[:i], r.ideas[i+1:]...)
	r.persist(ctx, "delete", zap.String("title", title))
	return nil
}

// Rename changes title and category of a fields idea in place.
func (r *Repository) Rename(ctx context.Context, title, newTitle, newCategory string) error {
	i := r.index(title)
	if i < 0 {
		return notFound(title)
	}
	if r.ideas[i].IsChat() {
		return fmt.Errorf("%w: rename", ErrWrongVariant)
	}
	newTitle = strings.TrimSpace(newTitle)
	newCategory = strings.TrimSpace(newCategory)
	if err := validateStruct(titleCategory{Title: newTitle, Category: newCategory}); err != nil {
		return err
	}
	if j := r.index(newTitle); j >= 0 && j != i {
		return fmt.Errorf("%w: %s", ErrDuplicateTitle, newTitle)
	}
	r.ideas[i].Title = newTitle
	r.ideas[i].Category = newCategory
	r.persist(ctx, "rename", zap.String("title", title), zap.String("new_title", newTitle))
	return nil
}

func (r *Repository) chatIdea(title string) (*model.Idea, error) {
	i := r.index(title)
	if i < 0 {
		return nil, notFound(title)
	}
	if !r.ideas[i].IsChat() {
		return nil, fmt.Errorf("%w: messages", ErrWrongVariant)
	}
	return &r.ideas[i], nil
}

func (r *Repository) AppendMessage(ctx context.Context, title, text string) error {
	it, err := r.chatIdea(title)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if err := validateStruct(messageText{Text: text}); err != nil {
		return err
	}
	it.Messages = append(it.Messages, text)
	r.persist(ctx, "message.append", zap.String("title", title), zap.Int("count", len(it.Messages)))
	return nil
}

// EditMessage replaces the message at index. Any text is accepted, including
// the empty string; an aborted edit never reaches the repository.
func (r *Repository) EditMessage(ctx context.Context, title string, index int, text string) error {
	it, err := r.chatIdea(title)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(it.Messages) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	it.Messages[index] = text
	r.persist(ctx, "message.edit", zap.String("title", title), zap.Int("index", index))
	return nil
}

func (r *Repository) DeleteMessage(ctx context.Context, title string, index int) error {
	it, err := r.chatIdea(title)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(it.Messages) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	it.Messages = append(it.Messages[:index], it.Messages[index+1:]...)
	r.persist(ctx, "message.delete", zap.String("title", title), zap.Int("index", index))
	return nil
}

// SetField overwrites commands or notes unconditionally.
func (r *Repository) SetField(ctx context.Context, title string, field model.Field, text string) error {
	i := r.index(title)
	if i < 0 {
		return notFound(title)
	}
	if r.ideas[i].IsChat() {
		return fmt.Errorf("%w: %s", ErrWrongVariant, field)
	}
	switch field {
	case model.FieldCommands:
		r.ideas[i].Commands = text
	case model.FieldNotes:
		r.ideas[i].Notes = text
	default:
		return ErrField
	}
	r.persist(ctx, "field.set", zap.String("title", title), zap.String("field", string(field)), zap.Int("len", len(text)))
	return nil
}

func (r *Repository) persist(ctx context.Context, op string, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op), zap.Int("ideas", len(r.ideas)))
	if err := r.p.Save(ctx, r.ideas); err != nil {
		r.lastSaveErr = err
		r.logger.Warn("save failed; in-memory state kept", append(fields, zap.Error(err))...)
		return
	}
	r.lastSaveErr = nil
	r.logger.Debug("saved", fields...)
}
