// Package catalog holds the fixed taxonomy of skills users can teach or learn.
// A Catalog is immutable once loaded and safe for concurrent use.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	svcErr "github.com/oggyb/skillswap/internal/errors"
)

//go:embed catalog.yaml
var defaultDocument []byte

// Category is a named group of skills, in declaration order.
type Category struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

type document struct {
	Categories []Category `yaml:"categories"`
}

type Catalog struct {
	categories []Category
	byName     map[string]int
	// skill -> category names containing it
	skills map[string][]string
}

// Default parses the embedded catalog. It panics on a malformed document since
// the document ships with the binary.
func Default() *Catalog {
	c, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded document: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the embedded one for an empty path.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultDocument)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse builds a catalog from a YAML document.
func Parse(b []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}

	c := &Catalog{
		categories: make([]Category, 0, len(doc.Categories)),
		byName:     make(map[string]int, len(doc.Categories)),
		skills:     make(map[string][]string),
	}
	for _, cat := range doc.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog category with empty name")
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("duplicate catalog category %q", name)
		}
		if len(cat.Skills) == 0 {
			return nil, fmt.Errorf("catalog category %q has no skills", name)
		}

		seen := make(map[string]struct{}, len(cat.Skills))
		skills := make([]string, 0, len(cat.Skills))
		for _, s := range cat.Skills {
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, fmt.Errorf("catalog category %q has an empty skill", name)
			}
			if _, dup := seen[s]; dup {
				return nil, fmt.Errorf("catalog category %q lists %q twice", name, s)
			}
			seen[s] = struct{}{}
			skills = append(skills, s)
			c.skills[s] = append(c.skills[s], name)
		}

		c.byName[name] = len(c.categories)
		c.categories = append(c.categories, Category{Name: name, Skills: skills})
	}
	return c, nil
}

// Categories returns the categories in declared order. The result is a copy.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Skills: append([]string(nil), cat.Skills...)}
	}
	return out
}

// CategoryNames lists category names in declared order.
func (c *Catalog) CategoryNames() []string {
	out := make([]string, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Name
	}
	return out
}

// SkillsIn returns the skills of one category.
func (c *Catalog) SkillsIn(category string) ([]string, error) {
	i, ok := c.byName[category]
	if !ok {
		return nil, svcErr.NotFound("skill category %q", category)
	}
	return append([]string(nil), c.categories[i].Skills...), nil
}

// Contains reports whether skill is a known skill name (exact match).
func (c *Catalog) Contains(skill string) bool {
	_, ok := c.skills[skill]
	return ok
}

// CategoriesOf returns every category listing skill.
func (c *Catalog) CategoriesOf(skill string) []string {
	return append([]string(nil), c.skills[skill]...)
}

// Len is the number of distinct skill names.
func (c *Catalog) Len() int { return len(c.skills) }
