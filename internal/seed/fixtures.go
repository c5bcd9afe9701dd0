package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Fixtures is a seed data set
type Fixtures struct {
	Users    []UserFixture    `yaml:"users"`
	Spaces   []SpaceFixture   `yaml:"spaces"`
	Tags     []string         `yaml:"tags"`
	Articles []ArticleFixture `yaml:"articles"`
}

type UserFixture struct {
	Username string `yaml:"username"`
	Role     string `yaml:"role"`
}

type SpaceFixture struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

// ArticleFixture is one article. Either Content or File is set; File points
// to a markdown file with frontmatter, relative to the fixture file.
type ArticleFixture struct {
	Space   string   `yaml:"space"`
	Author  string   `yaml:"author"`
	Title   string   `yaml:"title"`
	Content string   `yaml:"content"`
	File    string   `yaml:"file"`
	Edits   []string `yaml:"edits"`
	Tags    []string `yaml:"tags"`
	Publish bool     `yaml:"publish"`
}

// ParseFixtures decodes a YAML fixture document. Relative article files are
// resolved against baseDir.
func ParseFixtures(data []byte, baseDir string) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	for i := range f.Articles {
		a := &f.Articles[i]
		if a.Space == "" {
			return nil, fmt.Errorf("article %d: space is required", i)
		}
		if a.File == "" {
			continue
		}

		path := a.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", i, err)
		}
		file, err := ParseArticleFile(content)
		if err != nil {
			return nil, fmt.Errorf("article %d (%s): %w", i, a.File, err)
		}

		if a.Title == "" {
			a.Title = file.Title
		}
		a.Content = file.Content
		a.Tags = append(a.Tags, file.Tags...)
		a.Publish = a.Publish || file.Publish
	}

	return &f, nil
}

// LoadFixtures reads and parses a fixture file
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixtures(data, filepath.Dir(path))
}
