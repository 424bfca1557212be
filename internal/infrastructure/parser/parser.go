// Package parser katalog va promokod fayllarini o'qiydi (xlsx, yaml).
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

type catalogParser struct {
	excel *excelParser
}

// NewCatalogParser fayl kengaytmasiga qarab xlsx yoki yaml parser
func NewCatalogParser(log zerolog.Logger) repository.CatalogParser {
	return &catalogParser{
		excel: newExcelParser(log.With().Str("component", "excel_parser").Logger()),
	}
}

// ParseCatalog fayl yo'lidan o'qish
func (p *catalogParser) ParseCatalog(ctx context.Context, filePath string) (*entity.ProductCatalog, error) {
	if isExcel(filePath) {
		c, err := p.excel.parseFile(ctx, filePath)
		return withSource(c, filePath), err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return p.ParseCatalogFromBytes(ctx, data, filePath)
}

// ParseCatalogFromBytes byte array dan parse qilish
func (p *catalogParser) ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) (*entity.ProductCatalog, error) {
	var (
		c   *entity.ProductCatalog
		err error
	)
	switch {
	case isExcel(filename):
		c, err = p.excel.parseBytes(ctx, data)
	case isYAML(filename):
		c, err = parseCatalogYAML(data)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(filename))
	}
	return withSource(c, filename), err
}

func withSource(c *entity.ProductCatalog, filename string) *entity.ProductCatalog {
	if c != nil {
		c.Source = filepath.Base(filename)
	}
	return c
}

func isExcel(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
