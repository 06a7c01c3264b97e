package rulesbot

import (
	"encoding/json"
	"io"
)

// Category labels of the flat API feed.
const (
	CategoryMethod      = "Method"
	CategoryType        = "Type"
	CategoryConstructor = "Constructor"
)

// Category is one flat list of the API reference: display names and the URL
// suffixes they link to, as two parallel sequences of equal length.
type Category struct {
	Label string
	Names []string
	URLs  []string
}

// Validate returns an error if the parallel sequences differ in length.
func (c *Category) Validate() error {
	if c.Label == "" {
		return Errorf(EINVALID, "category label required")
	}
	if len(c.Names) != len(c.URLs) {
		return Errorf(EINVALID, "category %s has %d names but %d urls", c.Label, len(c.Names), len(c.URLs))
	}
	return nil
}

type categoryFeed struct {
	Methods      categoryLists `json:"methods"`
	Types        categoryLists `json:"types"`
	Constructors categoryLists `json:"constructors"`
}

type categoryLists struct {
	Names []string `json:"names"`
	URLs  []string `json:"urls"`
}

// LoadCategories parses the flat category feed. The returned categories are
// always ordered Method, Type, Constructor.
func LoadCategories(r io.Reader) ([]Category, error) {
	var feed categoryFeed
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, Errorf(EINVALID, "failed to parse category feed: %v", err)
	}

	categories := []Category{
		{Label: CategoryMethod, Names: feed.Methods.Names, URLs: feed.Methods.URLs},
		{Label: CategoryType, Names: feed.Types.Names, URLs: feed.Types.URLs},
		{Label: CategoryConstructor, Names: feed.Constructors.Names, URLs: feed.Constructors.URLs},
	}
	for i := range categories {
		if err := categories[i].Validate(); err != nil {
			return nil, err
		}
	}
	return categories, nil
}
