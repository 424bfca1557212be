package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: "buggy-1", Name: "Storm Buggy", Type: "Багги", Price: 7490, Rating: 4.6, Speed: 45, Features: []string{"4WD"}},
		{ID: "suv-1", Name: "Trail King", Type: "SUV-class", Price: 12990, OldPrice: 14990, Rating: 4.8, Speed: 30, Features: []string{"fast charge", "LED"}},
		{ID: "suv-2", Name: "Rock Crawler", Type: "SUV-class", Price: 8990, Rating: 4.8, Speed: 25, Description: "Fast and quiet"},
		{ID: "suv-3", Name: "Mud Bull", Type: "SUV-class", Price: 6490, Rating: 4.2, Speed: 28, Description: "Slow but steady"},
		{ID: "drift-1", Name: "Drift Ghost", Type: "Дрифт", Price: 9990, OldPrice: 11990, Rating: 4.6, Speed: 60, Features: []string{"Гироскоп"}},
	}
}

func ids(products []entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterTypeQueryCheap(t *testing.T) {
	got := Filter(sampleProducts(), entity.FilterState{Type: "SUV-class", Query: "fast", Sort: entity.SortCheap})
	assert.Equal(t, []string{"suv-2", "suv-1"}, ids(got))
}

func TestFilterAllTypesPopular(t *testing.T) {
	got := Filter(sampleProducts(), DefaultFilter())
	// 4.8 larda chegirma bor mahsulot oldinda, 4.6 larda ham shunday
	assert.Equal(t, []string{"suv-1", "suv-2", "drift-1", "buggy-1", "suv-3"}, ids(got))
}

func TestFilterFast(t *testing.T) {
	got := Filter(sampleProducts(), entity.FilterState{Type: entity.AllTypes, Sort: entity.SortFast})
	assert.Equal(t, []string{"drift-1", "buggy-1", "suv-1", "suv-3", "suv-2"}, ids(got))
}

func TestFilterStableForEqualKeys(t *testing.T) {
	products := []entity.Product{
		{ID: "a", Price: 100, Rating: 4},
		{ID: "b", Price: 100, Rating: 4},
		{ID: "c", Price: 50, Rating: 4},
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids(Filter(products, entity.FilterState{Sort: entity.SortCheap})))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Filter(products, entity.FilterState{Sort: entity.SortPopular})))
}

func TestFilterQueryIsCaseInsensitiveAndTrimmed(t *testing.T) {
	got := Filter(sampleProducts(), entity.FilterState{Query: "  гироСКОП ", Sort: entity.SortPopular})
	require.Len(t, got, 1)
	assert.Equal(t, "drift-1", got[0].ID)
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	src := sampleProducts()
	before := ids(src)

	_ = Filter(src, entity.FilterState{Sort: entity.SortCheap})

	assert.Equal(t, before, ids(src))
}

func TestFilterUnknownTypeIsEmpty(t *testing.T) {
	assert.Empty(t, Filter(sampleProducts(), entity.FilterState{Type: "Катер"}))
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, entity.SortCheap, ParseSort("Cheap"))
	assert.Equal(t, entity.SortFast, ParseSort(" fast "))
	assert.Equal(t, entity.SortPopular, ParseSort("rating"))
	assert.Equal(t, entity.SortPopular, ParseSort(""))
}

func TestTypes(t *testing.T) {
	assert.Equal(t, []string{entity.AllTypes, "Багги", "SUV-class", "Дрифт"}, Types(sampleProducts()))
	assert.Equal(t, []string{entity.AllTypes}, Types(nil))
}
