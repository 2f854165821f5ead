// Package catalog holds the product inventory and the simulated vendor
// market used to produce multi-vendor offers.
package catalog

import (
	_ "embed"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var seedYAML []byte

// Product is a single catalog entry. Sizes and widths are only populated for
// footwear. BasePrice is the list price before any vendor adjustment.
type Product struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Brand           string   `json:"brand" yaml:"brand"`
	Category        string   `json:"category" yaml:"category"`
	Description     string   `json:"description" yaml:"description"`
	AvailableSizes  []string `json:"available_sizes,omitempty" yaml:"available_sizes"`
	AvailableWidths []string `json:"available_widths,omitempty" yaml:"available_widths"`
	BasePrice       float64  `json:"base_price" yaml:"base_price"`
	ImageURL        string   `json:"image_url" yaml:"image_url"`
	Tags            []string `json:"tags" yaml:"tags"`
}

// Summary is the compact product card returned by searches.
type Summary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	BasePrice       float64  `json:"base_price"`
	ImageURL        string   `json:"image_url"`
	AvailableSizes  []string `json:"available_sizes,omitempty"`
	AvailableWidths []string `json:"available_widths,omitempty"`
}

// Offer is one vendor's quote for a product. The price, discount and
// final_price fields duplicate their unit_ counterparts for clients that
// predate per-unit pricing.
type Offer struct {
	Vendor         string  `json:"vendor"`
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	UnitDiscount   float64 `json:"unit_discount"`
	UnitFinalPrice float64 `json:"unit_final_price"`
	TotalPrice     float64 `json:"total_price"`
	Price          float64 `json:"price"`
	Discount       float64 `json:"discount"`
	FinalPrice     float64 `json:"final_price"`
	InStock        bool    `json:"in_stock"`
	ImageURL       string  `json:"image_url"`
}

type seed struct {
	Products []Product           `yaml:"products"`
	Vendors  map[string][]string `yaml:"vendors"`
}

// Service answers product searches and simulates vendor pricing. Pricing is
// randomized; pass a seeded rand.Rand to make it reproducible.
type Service struct {
	products []Product
	byID     map[string]Product
	vendors  map[string][]string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService loads the embedded seed catalog. rng may be nil, in which case
// an unseeded source is used.
func NewService(rng *rand.Rand) (*Service, error) {
	var s seed
	if err := yaml.Unmarshal(seedYAML, &s); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	svc := &Service{
		products: s.Products,
		byID:     make(map[string]Product, len(s.Products)),
		vendors:  s.Vendors,
		rng:      rng,
	}
	for _, p := range s.Products {
		svc.byID[p.ID] = p
	}
	return svc, nil
}

// Product returns the catalog entry for id.
func (s *Service) Product(id string) (Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Products returns the full catalog.
func (s *Service) Products() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

const maxResults = 6

// Search scores products against the query terms and returns up to six
// matches, best first. Category narrows the candidate set, maxPrice drops
// products whose base price exceeds it (0 means no cap), and size keeps only
// shoes carrying that size.
func (s *Service) Search(query, category string, maxPrice float64, size string) []Summary {
	terms := strings.Fields(strings.ToLower(query))

	type scored struct {
		p     Product
		score int
	}
	var matches []scored
	for _, p := range s.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if maxPrice > 0 && p.BasePrice > maxPrice {
			continue
		}
		blob := strings.ToLower(p.Name + " " + p.Brand + " " + p.Category + " " + strings.Join(p.Tags, " "))
		score := 0
		for _, t := range terms {
			if strings.Contains(blob, t) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		matches = append(matches, scored{p: p, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	var out []Summary
	for _, m := range matches {
		if size != "" && len(m.p.AvailableSizes) > 0 && !containsFold(m.p.AvailableSizes, size) {
			continue
		}
		out = append(out, summarize(m.p))
		if len(out) == maxResults {
			break
		}
	}
	return out
}

// VendorPrices simulates quotes from every vendor carrying the product's
// category and returns them cheapest first. Each vendor perturbs the base
// price by up to ±12% and may apply a 5-18% discount.
func (s *Service) VendorPrices(productID string, quantity int) ([]Offer, error) {
	p, ok := s.byID[productID]
	if !ok {
		return nil, fmt.Errorf("unknown product %q", productID)
	}
	if quantity < 1 {
		quantity = 1
	}
	vendors := s.vendors[p.Category]
	if len(vendors) == 0 {
		vendors = []string{"Amazon"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offers := make([]Offer, 0, len(vendors))
	for _, v := range vendors {
		unit := p.BasePrice * (1 + (s.rng.Float64()*0.24 - 0.12))
		unit = round2(unit)
		discount := 0.0
		if s.rng.Float64() < 0.40 {
			discount = round2(unit * (0.05 + s.rng.Float64()*0.13))
		}
		final := round2(unit - discount)
		o := Offer{
			Vendor:         v,
			ProductID:      p.ID,
			ProductName:    p.Name,
			Quantity:       quantity,
			UnitPrice:      unit,
			UnitDiscount:   discount,
			UnitFinalPrice: final,
			TotalPrice:     round2(final * float64(quantity)),
			Price:          unit,
			Discount:       discount,
			FinalPrice:     final,
			InStock:        true,
			ImageURL:       p.ImageURL,
		}
		offers = append(offers, o)
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].UnitFinalPrice < offers[j].UnitFinalPrice
	})
	return offers, nil
}

func summarize(p Product) Summary {
	return Summary{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Category:        p.Category,
		Description:     p.Description,
		BasePrice:       p.BasePrice,
		ImageURL:        p.ImageURL,
		AvailableSizes:  p.AvailableSizes,
		AvailableWidths: p.AvailableWidths,
	}
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
