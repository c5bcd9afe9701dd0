package seed

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ArticleFile is an article fixture stored as markdown with YAML frontmatter:
//
//	---
//	title: Getting Started
//	tags: [howto]
//	publish: true
//	---
//	# Markdown content here
type ArticleFile struct {
	Title   string   `yaml:"title"`
	Tags    []string `yaml:"tags"`
	Publish bool     `yaml:"publish"`
	Content string   `yaml:"-"`
}

// ParseArticleFile splits frontmatter from the markdown body
func ParseArticleFile(content []byte) (*ArticleFile, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, errors.New("missing frontmatter: file must start with '---'")
	}

	lines := bytes.Split(content, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, errors.New("missing closing frontmatter delimiter '---'")
	}

	var file ArticleFile
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}
	if file.Title == "" {
		return nil, errors.New("frontmatter field 'title' is required")
	}

	file.Content = string(bytes.TrimLeft(bytes.Join(lines[closing+1:], []byte("\n")), "\r\n"))
	return &file, nil
}
