package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple title", title: "Hello World", want: "hello-world"},
		{name: "mixed case", title: "Go Concurrency Patterns", want: "go-concurrency-patterns"},
		{name: "punctuation collapsed", title: "What's new? A lot!", want: "what-s-new-a-lot"},
		{name: "numbers kept", title: "Top 10 Tips", want: "top-10-tips"},
		{name: "leading and trailing noise", title: "  --Hello--  ", want: "hello"},
		{name: "consecutive separators", title: "a  -  b", want: "a-b"},
		{name: "non ascii dropped", title: "café au lait", want: "caf-au-lait"},
		{name: "empty", title: "", want: ""},
		{name: "only punctuation", title: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}
