// internal/catalog/catalog.go
// Package catalog holds the display metadata (full name, organization, logo,
// link) for the models that appear on the leaderboard. Catalogs are plain
// read-only values handed to the ingestion step; nothing here is global state.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FallbackLogo is shown for models that have no catalog entry.
const FallbackLogo = "model_logos/openai.png"

//go:embed models.yaml
var builtinYAML []byte

// Info is the display-only metadata for a single model.
type Info struct {
	FullName     string `yaml:"fullName" json:"fullName"`
	Organization string `yaml:"organization" json:"organization"`
	Logo         string `yaml:"logo" json:"logo"`
	Link         string `yaml:"link" json:"link"`
	HasReasoning bool   `yaml:"hasReasoning" json:"hasReasoning"`
}

// Catalog maps a model identifier, exactly as it appears in the result
// files, to its display metadata.
type Catalog map[string]Info

// File is the on-disk layout of a catalog file: one table for the text task
// models and one for the visual task models.
type File struct {
	Text   Catalog `yaml:"text"`
	Visual Catalog `yaml:"visual"`
}

// Lookup returns the metadata for key. Unknown models get a placeholder entry
// that uses the key as the display name.
func (c Catalog) Lookup(key string) Info {
	if info, ok := c[key]; ok {
		return info
	}
	return Info{
		FullName:     key,
		Organization: "Unknown",
		Logo:         FallbackLogo,
		Link:         "#",
		HasReasoning: true,
	}
}

// Keys returns the catalog's model identifiers in sorted order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ByOrganization groups model identifiers by organization. Both the
// organizations and the identifiers within each are sorted.
func (c Catalog) ByOrganization() map[string][]string {
	grouped := make(map[string][]string)
	for _, key := range c.Keys() {
		org := c[key].Organization
		grouped[org] = append(grouped[org], key)
	}
	return grouped
}

// Merge returns a new catalog holding base with every entry of overrides
// applied on top. Neither input is modified.
func Merge(base, overrides Catalog) Catalog {
	out := make(Catalog, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// LoadYAML decodes a catalog file.
func LoadYAML(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode catalog: %w", err)
	}
	for name, table := range map[string]Catalog{"text": f.Text, "visual": f.Visual} {
		for key, info := range table {
			if strings.TrimSpace(info.FullName) == "" {
				return File{}, fmt.Errorf("catalog %s entry %q: fullName is required", name, key)
			}
		}
	}
	return f, nil
}

// LoadFile reads a catalog file from disk.
func LoadFile(path string) (File, error) {
	file, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer file.Close()
	return LoadYAML(file)
}

var builtin = sync.OnceValues(func() (File, error) {
	return LoadYAML(strings.NewReader(string(builtinYAML)))
})

func init() {
	if _, err := builtin(); err != nil {
		panic(fmt.Sprintf("catalog: embedded models.yaml is invalid: %v", err))
	}
}

// Builtin returns the catalog tables shipped with the binary. The embedded
// file is decoded once; each call returns fresh maps.
func Builtin() File {
	f, _ := builtin()
	return File{Text: maps.Clone(f.Text), Visual: maps.Clone(f.Visual)}
}

// DefaultText returns the built-in metadata for text task models.
func DefaultText() Catalog { return Builtin().Text }

// DefaultVisual returns the built-in metadata for visual task models.
func DefaultVisual() Catalog { return Builtin().Visual }

// WithOverrides loads the catalog file at path (if any) and merges it on top
// of the built-in tables.
func WithOverrides(path string) (File, error) {
	base := Builtin()
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return base, fmt.Errorf("load catalog overrides %q: %w", path, err)
	}
	return File{
		Text:   Merge(base.Text, extra.Text),
		Visual: Merge(base.Visual, extra.Visual),
	}, nil
}
