package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

//go:embed demo.json
var demoCatalog []byte

// Catalog is the host-supplied product collection plus its category tree.
type Catalog struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

// Load reads a catalog JSON file. Products without an ID get a generated
// one so list navigation and share links always have something to point at.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return parse(data)
}

// Demo returns the embedded sample catalog, used when no catalog path is
// configured.
func Demo() *Catalog {
	c, err := parse(demoCatalog)
	if err != nil {
		// The embedded catalog is compiled in; a parse failure here is a
		// build defect, not a runtime condition.
		panic(err)
	}
	return c
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for i := range c.Products {
		if c.Products[i].ID == "" {
			c.Products[i].ID = uuid.NewString()
		}
	}
	return &c, nil
}

// CategoryNames returns the category names in catalog order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	return names
}
