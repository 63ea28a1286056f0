// internal/site/content.go
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed content/site.yaml content/intro.md
var contentFS embed.FS

// Link is an entry of the header link bar.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
	Icon  string `yaml:"icon"`
}

// Example is one worked example of a reasoning phenomenon.
type Example struct {
	Title string `yaml:"title"`
	Src   string `yaml:"src"`
	Alt   string `yaml:"alt"`
	Note  string `yaml:"note"`
}

// Phenomenon is one row of the key findings table.
type Phenomenon struct {
	Title    string    `yaml:"title"`
	Tag      string    `yaml:"tag"`
	Summary  string    `yaml:"summary"`
	Sketch   string    `yaml:"sketch"`
	Examples []Example `yaml:"examples"`
}

// Figure is a paragraph with an accompanying image.
type Figure struct {
	Text    string `yaml:"text"`
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
}

// Contribution is a card in the contributions section.
type Contribution struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Href        string `yaml:"href"`
	CTA         string `yaml:"cta"`
}

// Content is the static prose of the page.
type Content struct {
	Title         string         `yaml:"title"`
	Description   string         `yaml:"description"`
	Contact       string         `yaml:"contact"`
	Links         []Link         `yaml:"links"`
	Phenomena     []Phenomenon   `yaml:"phenomena"`
	Overview      []Figure       `yaml:"overview"`
	Contributions []Contribution `yaml:"contributions"`
	Citation      string         `yaml:"citation"`
	// Intro is the Markdown source of the summary paragraph.
	Intro string `yaml:"-"`
}

// DecodeContent parses a content document. The intro Markdown is supplied
// separately.
func DecodeContent(r io.Reader, intro string) (Content, error) {
	var c Content
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Content{}, fmt.Errorf("decode content: %w", err)
	}
	if c.Title == "" {
		return Content{}, fmt.Errorf("content: title is required")
	}
	c.Intro = intro
	return c, nil
}

// DefaultContent returns the page content compiled into the binary.
func DefaultContent() Content {
	raw, err := contentFS.ReadFile("content/site.yaml")
	if err != nil {
		panic(err)
	}
	intro, err := contentFS.ReadFile("content/intro.md")
	if err != nil {
		panic(err)
	}
	c, err := DecodeContent(bytes.NewReader(raw), string(intro))
	if err != nil {
		panic(err)
	}
	return c
}

// RenderMarkdown converts Markdown to HTML.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
