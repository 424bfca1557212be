package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// Ustun nomlari
const (
	colID          = "id"
	colName        = "name"
	colType        = "type"
	colPrice       = "price"
	colOldPrice    = "old_price"
	colRating      = "rating"
	colSpeed       = "speed"
	colScale       = "scale"
	colRange       = "range"
	colBattery     = "battery"
	colFeatures    = "features"
	colDescription = "description"
)

type excelParser struct {
	log zerolog.Logger
}

func newExcelParser(log zerolog.Logger) *excelParser {
	return &excelParser{log: log}
}

// parseFile xlsx fayldan katalogni o'qish
func (e *excelParser) parseFile(ctx context.Context, filePath string) (*entity.ProductCatalog, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// parseBytes byte array dan parse qilish
func (e *excelParser) parseBytes(ctx context.Context, data []byte) (*entity.ProductCatalog, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// parseExcelFile birinchi sheet, birinchi qator sarlavha
func (e *excelParser) parseExcelFile(f *excelize.File) (*entity.ProductCatalog, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file has no data")
	}

	columns := mapColumns(rows[0])
	e.log.Debug().Interface("columns", columns).Int("rows", len(rows)).Msg("excel sarlavhasi")

	if _, ok := columns[colName]; !ok {
		return nil, fmt.Errorf("name column not found in header %v", rows[0])
	}
	if _, ok := columns[colPrice]; !ok {
		return nil, fmt.Errorf("price column not found in header %v", rows[0])
	}

	var products []entity.Product
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		product, err := e.parseRow(row, columns)
		if err != nil {
			e.log.Warn().Err(err).Int("row", i+1).Msg("qator o'tkazib yuborildi")
			continue
		}
		products = append(products, product)
	}

	e.log.Info().Int("products", len(products)).Msg("excel katalog o'qildi")
	if len(products) == 0 {
		return nil, fmt.Errorf("no valid products found in excel file (parsed %d rows, but all were invalid)", len(rows)-1)
	}

	return &entity.ProductCatalog{Products: products}, nil
}

func (e *excelParser) parseRow(row []string, columns map[string]int) (entity.Product, error) {
	cell := func(key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	name := cell(colName)
	if name == "" {
		return entity.Product{}, fmt.Errorf("empty name")
	}
	price, err := parsePrice(cell(colPrice))
	if err != nil || price <= 0 {
		return entity.Product{}, fmt.Errorf("invalid price %q", cell(colPrice))
	}

	product := entity.Product{
		ID:          cell(colID),
		Name:        name,
		Type:        cell(colType),
		Price:       price,
		Scale:       cell(colScale),
		Range:       cell(colRange),
		Battery:     cell(colBattery),
		Features:    splitFeatures(cell(colFeatures)),
		Description: cell(colDescription),
	}
	if product.ID == "" {
		product.ID = generateID()
	}
	if product.Type == "" {
		product.Type = detectType(name)
	}
	if raw := cell(colOldPrice); raw != "" {
		if old, err := parsePrice(raw); err == nil {
			product.OldPrice = old
		}
	}
	if raw := cell(colRating); raw != "" {
		if rating, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
			product.Rating = rating
		}
	}
	if raw := cell(colSpeed); raw != "" {
		product.Speed = parseLeadingInt(raw)
	}
	return product, nil
}

// mapColumns sarlavha qatoridan ustun indekslari (RU/EN nomlar)
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	set := func(key string, i int) {
		if _, ok := columns[key]; !ok {
			columns[key] = i
		}
	}

	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if name == "" {
			continue
		}

		// "old price" "price" dan oldin tekshiriladi
		switch {
		case name == "id" || contains(name, "артикул", "sku", "код"):
			set(colID, i)
		case contains(name, "old", "стар", "зачеркн", "без скидки"):
			set(colOldPrice, i)
		case contains(name, "price", "цена", "стоимость"):
			set(colPrice, i)
		case contains(name, "name", "название", "наименование", "модель", "model"):
			set(colName, i)
		case contains(name, "type", "тип", "категория", "category", "класс"):
			set(colType, i)
		case contains(name, "rating", "рейтинг", "оценка"):
			set(colRating, i)
		case contains(name, "speed", "скорость", "км/ч"):
			set(colSpeed, i)
		case contains(name, "scale", "масштаб"):
			set(colScale, i)
		case contains(name, "range", "дальность", "радиус"):
			set(colRange, i)
		case contains(name, "battery", "аккумулятор", "акб", "батарея"):
			set(colBattery, i)
		case contains(name, "feature", "особенност", "характеристик", "фишки"):
			set(colFeatures, i)
		case contains(name, "description", "описание", "desc"):
			set(colDescription, i)
		}
	}
	return columns
}

// contains tekshirish uchun helper
func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var priceReplacer = strings.NewReplacer(
	" ", "", "\u00a0", "", "\u202f", "",
	"₽", "", "руб.", "", "руб", "", "р.", "", "rub", "", "$", "",
)

// parsePrice "12 990 ₽", "12990,50" kabi qiymatlarni butun rublga yaxlitlash
func parsePrice(raw string) (int64, error) {
	s := priceReplacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price format: %s", raw)
	}
	return d.Round(0).IntPart(), nil
}

// parseLeadingInt "60 км/ч" -> 60
func parseLeadingInt(raw string) int {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r < '0' || r > '9' {
			break
		}
		digits.WriteRune(r)
	}
	n, _ := strconv.Atoi(digits.String())
	return n
}

// splitFeatures ";" yoki "," bilan ajratilgan ro'yxat
func splitFeatures(raw string) []string {
	if raw == "" {
		return nil
	}
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func generateID() string {
	return "rc-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// detectType nomdan kategoriyani aniqlash
func detectType(name string) string {
	n := strings.ToLower(name)
	switch {
	case contains(n, "краулер", "crawler", "внедорожник", "suv", "jeep", "джип"):
		return "SUV-class"
	case contains(n, "дрифт", "drift"):
		return "Дрифт"
	case contains(n, "багги", "buggy"):
		return "Багги"
	case contains(n, "монстр", "monster", "truggy", "трагги"):
		return "Монстр-траки"
	case contains(n, "шорт-корс", "short course", "sct"):
		return "Шорт-корс"
	case contains(n, "катер", "boat", "лодка"):
		return "Катера"
	default:
		return "Другое"
	}
}
