package parser

import (
	"reflect"
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ntags:\n  - go\n  - folio\nsource: Field notes, p. 3\n---\n# Heading\nBody text.\n")
	d := Parse(input)
	if d.Title != "Hello" {
		t.Errorf("title = %q, want %q", d.Title, "Hello")
	}
	if !reflect.DeepEqual(d.Tags, []string{"go", "folio"}) {
		t.Errorf("tags = %v, want [go folio]", d.Tags)
	}
	if d.Source == nil || *d.Source != "Field notes, p. 3" {
		t.Errorf("source = %v", d.Source)
	}
	if d.Content != "# Heading\nBody text.\n" {
		t.Errorf("content = %q", d.Content)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	d := Parse([]byte("# Just a heading\nSome text.\n"))
	if d.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", d.Title, "Just a heading")
	}
	if d.Tags == nil || len(d.Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil", d.Tags)
	}
	if d.Source != nil {
		t.Errorf("source = %v, want nil", *d.Source)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := "---\n: invalid: yaml: {{{\n---\nBody\n"
	d := Parse([]byte(input))
	if d.Content != input {
		t.Errorf("content = %q, want whole input", d.Content)
	}
	if d.Title != "" {
		t.Errorf("title = %q, want empty", d.Title)
	}
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	input := "---\ntitle: x\nno closing"
	if d := Parse([]byte(input)); d.Content != input {
		t.Errorf("content = %q", d.Content)
	}
}

func TestParse_CommaSeparatedTags(t *testing.T) {
	d := Parse([]byte("---\ntags: \"a, #b, , a\"\n---\nbody"))
	if !reflect.DeepEqual(d.Tags, []string{"a", "b"}) {
		t.Errorf("tags = %v, want [a b]", d.Tags)
	}
}

func TestParse_BlankSourceIgnored(t *testing.T) {
	d := Parse([]byte("---\nsource: \"  \"\n---\nbody"))
	if d.Source != nil {
		t.Errorf("source = %q, want nil", *d.Source)
	}
}

func TestFirstHeading(t *testing.T) {
	if got := firstHeading("some text\n## Sub\n# My Heading\nmore"); got != "My Heading" {
		t.Errorf("firstHeading = %q, want %q", got, "My Heading")
	}
	if got := firstHeading("no headings"); got != "" {
		t.Errorf("firstHeading = %q, want empty", got)
	}
}
