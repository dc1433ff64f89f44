package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a/", []string{"a"}},
		{"a/b", []string{"a", "b"}},
		{"a123/b1234/cvvsdf", []string{"a123", "b1234", "cvvsdf"}},
		{"/a123/b1234/cvvsdf", []string{"a123", "b1234", "cvvsdf"}},
		{"//a", []string{"a"}},
		{"//a//b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := Parse(tt.in)
			assert.Equal(t, len(tt.want), p.Size())
			for i, w := range tt.want {
				assert.Equal(t, w, p.Get(i))
			}
			assert.Equal(t, tt.want[len(tt.want)-1], p.PeekLast())
		})
	}
}

func TestPattern_Empty(t *testing.T) {
	p := Parse("")
	assert.Equal(t, 0, p.Size())
	assert.Equal(t, "", p.PeekLast())
	assert.Equal(t, "", p.Get(3))
}

func TestTailMatchLength(t *testing.T) {
	tests := []struct {
		name, rule string
		want       int
	}{
		{"/a/b", "*", 0},
		{"/a", "*/a", 1},
		{"/a/b", "*/b", 1},
		{"/a/b/c", "*/b/c", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name+" "+tt.rule, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.name).TailMatchLength(Parse(tt.rule)))
		})
	}
}

func TestPrefixMatchLength(t *testing.T) {
	tests := []struct {
		name, rule string
		want       int
	}{
		{"/a/b", "/x/*", 0},
		{"/a", "/x/*", 0},
		{"/a/b", "/a/*", 1},
		{"/a/b", "/a/b/*", 2},
		{"/a/b", "/*", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name+" "+tt.rule, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.name).PrefixMatchLength(Parse(tt.rule)))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Parse("/a/b").Equal(Parse("a/b/")))
	assert.False(t, Parse("a/b").Equal(Parse("a/c")))
	assert.False(t, Parse("a").Equal(Parse("a/b")))
	assert.Equal(t, "a/b", Parse("//a//b").String())
}

func TestStore_Match(t *testing.T) {
	var s Store[int]
	s.Add("*", 1)
	s.Add("web/*", 2)
	s.Add("web/api/*", 3)
	s.Add("*/access", 4)
	s.Add("*/api/access", 5)
	s.Add("web/api/access", 6)
	assert.Equal(t, 6, s.Len())

	tests := []struct {
		name string
		want int
	}{
		{"web/api/access", 6},
		{"mobile/api/access", 5},
		{"web/static/access", 4},
		{"web/api/error", 3},
		{"web/error", 2},
		{"db/slow", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Match(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_PartialTailDoesNotMatch(t *testing.T) {
	var s Store[string]
	s.Add("*/x/access", "x")

	_, ok := s.Match("web/api/access")
	assert.False(t, ok)
}

func TestStore_NoRules(t *testing.T) {
	var s Store[string]
	v, ok := s.Match("anything")
	assert.False(t, ok)
	assert.Equal(t, "", v)
}
