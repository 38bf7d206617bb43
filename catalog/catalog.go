// Package catalog holds the static workflow pattern definitions.
// A catalog is built once at startup, validated, and shared read-only
// with every analysis session.
package catalog

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Category defines one named workflow pattern. Keywords and UI element
// labels are explicit triggers; regex patterns add supporting matches but
// never make a category "detected" on their own.
type Category struct {
	Name       string   `validate:"required"`
	Keywords   []string `validate:"required,min=1,dive,required"`
	UIElements []string `validate:"dive,required"`
	Patterns   []string `validate:"dive,required"`
	Weight     float64  `validate:"required,gt=0,lte=1"`

	regexps []*regexp.Regexp
}

// Triggers returns every explicit, named trigger of the category.
func (c Category) Triggers() []string {
	out := make([]string, 0, len(c.Keywords)+len(c.UIElements))
	out = append(out, c.Keywords...)
	out = append(out, c.UIElements...)
	return out
}

// Regexps returns the patterns compiled by New.
func (c Category) Regexps() []*regexp.Regexp { return c.regexps }

type Catalog struct {
	categories []Category
}

// New validates the definitions, compiles their regex patterns and freezes
// them into an immutable catalog.
func New(defs []Category) (*Catalog, error) {
	v := validator.New()
	seen := make(map[string]struct{}, len(defs))

	categories := make([]Category, 0, len(defs))
	for _, def := range defs {
		if err := v.Struct(def); err != nil {
			return nil, fmt.Errorf("invalid category %q: %w", def.Name, err)
		}
		if _, dup := seen[def.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", def.Name)
		}
		seen[def.Name] = struct{}{}

		def.regexps = make([]*regexp.Regexp, 0, len(def.Patterns))
		for _, p := range def.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("category %q pattern %q: %w", def.Name, p, err)
			}
			def.regexps = append(def.regexps, re)
		}
		categories = append(categories, def)
	}

	return &Catalog{categories: categories}, nil
}

func (c *Catalog) Categories() []Category { return c.categories }

func (c *Catalog) Len() int { return len(c.categories) }
