// Package tips provides the mental health tip catalog and a cyclic browser over it.
package tips

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/diogo/pawsitive/internal/errors"
)

//go:embed catalog.json
var builtinCatalog []byte

// Tip is one card in a category
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Category is a named list of tips
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tips []Tip  `json:"tips"`
}

// Catalog is the ordered set of categories
type Catalog struct {
	Categories []Category
	Disclaimer string
}

// Builtin returns the embedded catalog
func Builtin() *Catalog {
	cat, err := Parse(string(builtinCatalog), "builtin")
	if err != nil {
		// the embedded document is fixed at build time
		panic(fmt.Sprintf("tips: invalid builtin catalog: %v", err))
	}
	return cat
}

// Load reads a catalog file. An empty path returns the builtin catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tips file: %w", err)
	}
	return Parse(string(data), path)
}

// LoadOrBuiltin loads path and falls back to the builtin catalog on error.
// The error is returned so callers can report it.
func LoadOrBuiltin(path string) (*Catalog, error) {
	cat, err := Load(path)
	if err != nil {
		return Builtin(), err
	}
	return cat, nil
}

// Parse decodes a catalog document:
//
//	{"disclaimer": "...", "categories": [{"id", "name", "tips": [{"title", "description", "icon"}]}]}
//
// Every category needs an id and at least one tip with a title.
func Parse(data, source string) (*Catalog, error) {
	if !gjson.Valid(data) {
		return nil, apperrors.NewParseError("not valid JSON", source)
	}

	parsed := gjson.Parse(data)
	categories := parsed.Get("categories")
	if !categories.IsArray() {
		return nil, apperrors.NewParseError("missing categories array", source)
	}

	cat := &Catalog{Disclaimer: parsed.Get("disclaimer").String()}
	seen := make(map[string]bool)

	var parseErr error
	categories.ForEach(func(idx, c gjson.Result) bool {
		id := strings.TrimSpace(c.Get("id").String())
		if id == "" {
			parseErr = apperrors.NewParseError(fmt.Sprintf("category %d has no id", idx.Int()), source)
			return false
		}
		if seen[id] {
			parseErr = apperrors.NewParseError(fmt.Sprintf("duplicate category %q", id), source)
			return false
		}
		seen[id] = true

		name := c.Get("name").String()
		if name == "" {
			name = id
		}

		category := Category{ID: id, Name: name}
		c.Get("tips").ForEach(func(_, t gjson.Result) bool {
			title := t.Get("title").String()
			if title == "" {
				return true
			}
			category.Tips = append(category.Tips, Tip{
				Title:       title,
				Description: t.Get("description").String(),
				Icon:        t.Get("icon").String(),
			})
			return true
		})

		if len(category.Tips) == 0 {
			parseErr = apperrors.NewParseError(fmt.Sprintf("category %q has no tips", id), source)
			return false
		}
		cat.Categories = append(cat.Categories, category)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(cat.Categories) == 0 {
		return nil, apperrors.NewParseError("catalog has no categories", source)
	}

	return cat, nil
}

// Category looks up a category by id
func (c *Catalog) Category(id string) (Category, error) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return Category{}, apperrors.NewCategoryError(id)
}

// IDs returns the category ids in order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		ids[i] = cat.ID
	}
	return ids
}
