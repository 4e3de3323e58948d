package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Catalog is the immutable store configuration the views and checkout read
// from. It is safe for concurrent use.
type Catalog struct {
	doc   Document
	index map[string]int
}

// New validates doc and indexes its products.
func New(doc Document) (*Catalog, error) {
	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	c := &Catalog{doc: doc, index: make(map[string]int, len(doc.Products))}
	for i, p := range doc.Products {
		c.index[p.ID] = i
	}
	return c, nil
}

// Load reads and validates the store configuration at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a store configuration document.
func Parse(r io.Reader) (*Catalog, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc)
}

// WithProducts returns a copy of the catalog whose product list is replaced.
func (c *Catalog) WithProducts(products []Product) (*Catalog, error) {
	doc := c.doc
	doc.Products = append([]Product(nil), products...)
	return New(doc)
}

func (c *Catalog) Document() Document { return c.doc }

func (c *Catalog) StoreInfo() StoreInfo { return c.doc.StoreInfo }

func (c *Catalog) VoucherInfo() VoucherInfo { return c.doc.VoucherInfo }

func (c *Catalog) FormLabels() FormLabels { return c.doc.FormLabels }

func (c *Catalog) Messages() Messages { return c.doc.Messages }

func (c *Catalog) MinPurchase() int { return c.doc.StoreInfo.MinPurchase }

// Products returns the products in document order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.doc.Products...)
}

// Lookup finds a product by id.
func (c *Catalog) Lookup(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.doc.Products[i], true
}

// Price implements cart.Pricer.
func (c *Catalog) Price(id string) (int64, bool) {
	p, ok := c.Lookup(id)
	if !ok {
		return 0, false
	}
	return p.Price, true
}

// Position returns the index of id in document order.
func (c *Catalog) Position(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Search returns products whose name contains query, ignoring case. A blank
// query matches everything.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Products()
	}
	out := make([]Product, 0, len(c.doc.Products))
	for _, p := range c.doc.Products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// MinPurchaseWarning renders the configured warning with {min} filled in.
func (c *Catalog) MinPurchaseWarning() string {
	return strings.Replace(c.doc.Messages.MinPurchaseWarning, "{min}", strconv.Itoa(c.MinPurchase()), 1)
}

// ProductSource supplies the product list from outside the document.
type ProductSource interface {
	ListActive(ctx context.Context) ([]Product, error)
}

// Overlay replaces the document products with those read from src.
func Overlay(ctx context.Context, c *Catalog, src ProductSource) (*Catalog, error) {
	products, err := src.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return c.WithProducts(products)
}
