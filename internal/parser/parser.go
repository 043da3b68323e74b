// Package parser turns Markdown files into scratch drafts.
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Draft is the scratch content recovered from one Markdown file.
type Draft struct {
	Title   string
	Content string
	Tags    []string
	Source  *string
}

type frontmatter struct {
	Title  string  `yaml:"title"`
	Tags   tagList `yaml:"tags"`
	Source *string `yaml:"source"`
}

// tagList accepts either a YAML sequence or a comma-separated string.
type tagList []string

func (t *tagList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*t = splitTags(strings.Split(n.Value, ","))
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := n.Decode(&raw); err != nil {
			return err
		}
		*t = splitTags(raw)
		return nil
	default:
		return fmt.Errorf("tags: unsupported YAML kind %d", n.Kind)
	}
}

// splitTags trims, drops empties and de-duplicates, keeping first-seen order.
func splitTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimPrefix(strings.TrimSpace(s), "#")
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Parse reads optional YAML frontmatter (title, tags, source) and the body.
// Without a frontmatter title, the first H1 heading is used. Malformed
// frontmatter is kept as part of the body.
func Parse(data []byte) Draft {
	fm, body := splitFrontmatter(data)

	d := Draft{Content: body, Tags: []string{}}
	if fm != nil {
		d.Title = strings.TrimSpace(fm.Title)
		if fm.Tags != nil {
			d.Tags = fm.Tags
		}
		if fm.Source != nil && strings.TrimSpace(*fm.Source) != "" {
			src := strings.TrimSpace(*fm.Source)
			d.Source = &src
		}
	}
	if d.Title == "" {
		d.Title = firstHeading(body)
	}
	return d
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body.
func splitFrontmatter(data []byte) (*frontmatter, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	block := rest[:idx]
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")

	var fm frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, string(data)
	}
	return &fm, body
}

func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
