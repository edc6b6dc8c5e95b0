package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestIdeaJSON_VariantShapes(t *testing.T) {
	t.Parallel()

	chat := NewIdea("A", "x", VariantChat)
	b, err := json.Marshal(chat)
	if err != nil {
		t.Fatalf("Marshal chat: %v", err)
	}
	if string(b) != `{"title":"A","category":"x","messages":[]}` {
		t.Fatalf("unexpected chat JSON: %s", b)
	}

	fields := NewIdea("B", "y", VariantFields)
	fields.Commands = "ls"
	b, err = json.Marshal(fields)
	if err != nil {
		t.Fatalf("Marshal fields: %v", err)
	}
	if string(b) != `{"title":"B","category":"y","commands":"ls","notes":""}` {
		t.Fatalf("unexpected fields JSON: %s", b)
	}
}

func TestIdeaJSON_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Idea
	}{
		{
			name: "chat",
			in:   `{"title":"A","category":"x","messages":["hi",""]}`,
			want: Idea{Title: "A", Category: "x", Variant: VariantChat, Messages: []string{"hi", ""}},
		},
		{
			name: "chat without messages",
			in:   `{"title":"A","category":"x"}`,
			want: Idea{Title: "A", Category: "x", Variant: VariantChat, Messages: []string{}},
		},
		{
			name: "fields with only notes",
			in:   `{"title":"B","category":"y","notes":"n"}`,
			want: Idea{Title: "B", Category: "y", Variant: VariantFields, Notes: "n"},
		},
		{
			name: "fields win over messages",
			in:   `{"title":"B","category":"y","messages":["m"],"commands":"c","notes":""}`,
			want: Idea{Title: "B", Category: "y", Variant: VariantFields, Commands: "c"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got Idea
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("decode mismatch:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}

func TestClone_DoesNotShareMessages(t *testing.T) {
	t.Parallel()
	a := NewIdea("A", "x", VariantChat)
	a.Messages = append(a.Messages, "one")
	b := a.Clone()
	b.Messages[0] = "changed"
	if a.Messages[0] != "one" {
		t.Fatalf("clone shares backing array")
	}
}

func TestParseVariantAndField(t *testing.T) {
	t.Parallel()
	if v, err := ParseVariant(""); err != nil || v != VariantChat {
		t.Fatalf("empty variant: %v %v", v, err)
	}
	if v, err := ParseVariant("fields"); err != nil || v != VariantFields {
		t.Fatalf("fields variant: %v %v", v, err)
	}
	if _, err := ParseVariant("kanban"); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
	if f, ok := ParseField("notes"); !ok || f != FieldNotes {
		t.Fatalf("notes field: %v %v", f, ok)
	}
	if _, ok := ParseField("messages"); ok {
		t.Fatalf("expected messages to be rejected as a field")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   Idea
		want Idea
	}{
		{"zero variant", Idea{Title: "A"}, Idea{Title: "A", Variant: VariantChat, Messages: []string{}}},
		{"chat drops fields", Idea{Variant: VariantChat, Commands: "c", Messages: []string{"m"}}, Idea{Variant: VariantChat, Messages: []string{"m"}}},
		{"fields drops messages", Idea{Variant: VariantFields, Notes: "n", Messages: []string{}}, Idea{Variant: VariantFields, Notes: "n"}},
	}
	for _, tt := range tests {
		got := tt.in
		got.Normalize()
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: got %#v; want %#v", tt.name, got, tt.want)
		}
	}
}
