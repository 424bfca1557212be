package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

type yamlProduct struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Price       int64    `yaml:"price"`
	OldPrice    int64    `yaml:"old_price"`
	Rating      float64  `yaml:"rating"`
	Speed       int      `yaml:"speed"`
	Scale       string   `yaml:"scale"`
	Range       string   `yaml:"range"`
	Battery     string   `yaml:"battery"`
	Features    []string `yaml:"features"`
	Description string   `yaml:"description"`
}

type yamlCatalog struct {
	Types    []string      `yaml:"types"`
	Products []yamlProduct `yaml:"products"`
}

type yamlPromo struct {
	Code  string  `yaml:"code"`
	Type  string  `yaml:"type"`
	Value float64 `yaml:"value"`
	Note  string  `yaml:"note"`
}

type yamlPromoTable struct {
	Promos []yamlPromo `yaml:"promos"`
}

// parseCatalogYAML katalog seed fayli
func parseCatalogYAML(data []byte) (*entity.ProductCatalog, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog yaml: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("catalog yaml has no products")
	}

	products := make([]entity.Product, 0, len(doc.Products))
	for i, p := range doc.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("product #%d: name is required", i+1)
		}
		if p.Price <= 0 {
			return nil, fmt.Errorf("product %q: price must be positive", name)
		}
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = generateID()
		}
		productType := strings.TrimSpace(p.Type)
		if productType == "" {
			productType = detectType(name)
		}
		products = append(products, entity.Product{
			ID:          id,
			Name:        name,
			Type:        productType,
			Price:       p.Price,
			OldPrice:    p.OldPrice,
			Rating:      p.Rating,
			Speed:       p.Speed,
			Scale:       p.Scale,
			Range:       p.Range,
			Battery:     p.Battery,
			Features:    p.Features,
			Description: strings.TrimSpace(p.Description),
		})
	}

	c := &entity.ProductCatalog{Products: products}
	if len(doc.Types) > 0 {
		c.Types = append([]string{entity.AllTypes}, withoutAll(doc.Types)...)
	}
	return c, nil
}

func withoutAll(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" && t != entity.AllTypes {
			out = append(out, t)
		}
	}
	return out
}

// ParsePromos promokodlar jadvali (yaml)
func ParsePromos(data []byte) ([]entity.Promo, error) {
	var doc yamlPromoTable
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode promo yaml: %w", err)
	}

	promos := make([]entity.Promo, 0, len(doc.Promos))
	for _, p := range doc.Promos {
		code := entity.NormalizePromoCode(p.Code)
		if code == "" {
			return nil, fmt.Errorf("promo code is required")
		}
		if p.Value < 0 {
			return nil, fmt.Errorf("promo %s: value must not be negative", code)
		}
		kind, err := entity.ParsePromoKind(p.Type, decimal.NewFromFloat(p.Value))
		if err != nil {
			return nil, fmt.Errorf("promo %s: %w", code, err)
		}
		promos = append(promos, entity.Promo{Code: code, Kind: kind, Note: p.Note})
	}
	return promos, nil
}

// LoadPromos fayldan promokodlar jadvali
func LoadPromos(path string) ([]entity.Promo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read promo file: %w", err)
	}
	return ParsePromos(data)
}
