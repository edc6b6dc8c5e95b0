package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Variant selects which content shape an idea carries.
type Variant string

const (
	VariantChat   Variant = "chat"
	VariantFields Variant = "fields"
)

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(VariantChat):
		return VariantChat, nil
	case string(VariantFields):
		return VariantFields, nil
	default:
		return "", fmt.Errorf("unknown variant: %q (want chat|fields)", s)
	}
}

// Field names a free-text field of a fields-variant idea.
type Field string

const (
	FieldCommands Field = "commands"
	FieldNotes    Field = "notes"
)

func ParseField(s string) (Field, bool) {
	switch Field(strings.ToLower(strings.TrimSpace(s))) {
	case FieldCommands:
		return FieldCommands, true
	case FieldNotes:
		return FieldNotes, true
	}
	return "", false
}

// Idea is a titled, categorized note.
//
// Variant is the discriminator: chat ideas use Messages, fields ideas use
// Commands and Notes. The JSON form only carries the fields of its variant.
type Idea struct {
	Title    string
	Category string
	Variant  Variant

	Messages []string

	Commands string
	Notes    string
}

func NewIdea(title, category string, v Variant) Idea {
	it := Idea{Title: title, Category: category, Variant: v}
	if v != VariantFields {
		it.Variant = VariantChat
		it.Messages = []string{}
	}
	return it
}

// Normalize brings it into the shape its JSON form decodes back to: chat ideas
// get a non-nil Messages and no field text, fields ideas get no Messages.
func (it *Idea) Normalize() {
	if it.Variant != VariantFields {
		it.Variant = VariantChat
		if it.Messages == nil {
			it.Messages = []string{}
		}
		it.Commands, it.Notes = "", ""
		return
	}
	it.Messages = nil
}

func (it Idea) IsChat() bool { return it.Variant != VariantFields }

func (it Idea) FieldValue(f Field) string {
	if f == FieldCommands {
		return it.Commands
	}
	return it.Notes
}

// Clone returns a copy that shares no slices with it.
func (it Idea) Clone() Idea {
	out := it
	if it.Messages != nil {
		out.Messages = append([]string{}, it.Messages...)
	}
	return out
}

type chatWire struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Messages []string `json:"messages"`
}

type fieldsWire struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Commands string `json:"commands"`
	Notes    string `json:"notes"`
}

type anyWire struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Messages []string `json:"messages"`
	Commands *string  `json:"commands"`
	Notes    *string  `json:"notes"`
}

func (it Idea) MarshalJSON() ([]byte, error) {
	if it.Variant == VariantFields {
		return json.Marshal(fieldsWire{
			Title:    it.Title,
			Category: it.Category,
			Commands: it.Commands,
			Notes:    it.Notes,
		})
	}
	msgs := it.Messages
	if msgs == nil {
		msgs = []string{}
	}
	return json.Marshal(chatWire{Title: it.Title, Category: it.Category, Messages: msgs})
}

func (it *Idea) UnmarshalJSON(b []byte) error {
	var w anyWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*it = Idea{Title: w.Title, Category: w.Category}
	if w.Commands != nil || w.Notes != nil {
		it.Variant = VariantFields
		if w.Commands != nil {
			it.Commands = *w.Commands
		}
		if w.Notes != nil {
			it.Notes = *w.Notes
		}
		return nil
	}
	it.Variant = VariantChat
	it.Messages = w.Messages
	if it.Messages == nil {
		// Older data may lack the messages array entirely.
		it.Messages = []string{}
	}
	return nil
}
