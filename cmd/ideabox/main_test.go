package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTitleLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"ideabox"},
			want: []string{"ideabox"},
		},
		{
			name: "title ref first token",
			in:   []string{"ideabox", "@Garden bot"},
			want: []string{"ideabox", "show", "Garden bot"},
		},
		{
			name: "title ref after value flag",
			in:   []string{"ideabox", "--dir", "./tmp-test-ws", "@Garden bot"},
			want: []string{"ideabox", "--dir", "./tmp-test-ws", "show", "Garden bot"},
		},
		{
			name: "title ref after equals flag",
			in:   []string{"ideabox", "--dir=./tmp-test-ws", "@Garden bot"},
			want: []string{"ideabox", "--dir=./tmp-test-ws", "show", "Garden bot"},
		},
		{
			name: "title ref after bool flag then trailing flag",
			in:   []string{"ideabox", "--pretty", "@x", "--format", "yaml"},
			want: []string{"ideabox", "--pretty", "show", "x", "--format", "yaml"},
		},
		{
			name: "title ref after double dash",
			in:   []string{"ideabox", "--dir", "./tmp-test-ws", "--", "@x"},
			want: []string{"ideabox", "--dir", "./tmp-test-ws", "--", "show", "x"},
		},
		{
			name: "bare at sign not rewritten",
			in:   []string{"ideabox", "@"},
			want: []string{"ideabox", "@"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"ideabox", "show", "@x"},
			want: []string{"ideabox", "show", "@x"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"ideabox", "wat"},
			want: []string{"ideabox", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTitleLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectTitleLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
