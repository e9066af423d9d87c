package catalog

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(ps []*Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func numbered(n int) []*Product {
	out := make([]*Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("Product %02d", i), IsActive: true})
	}
	return out
}

func TestApplyPagination(t *testing.T) {
	products := numbered(25)

	tests := []struct {
		name  string
		page  int
		count int
	}{
		{"first page", 1, 12},
		{"second page", 2, 12},
		{"last page remainder", 3, 1},
		{"beyond range", 4, 0},
		{"far beyond range", 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Apply(products, Query{Page: tt.page, Limit: 12})
			assert.Len(t, page.Products, tt.count)
			assert.Equal(t, 25, page.Total)
			assert.Equal(t, 3, page.TotalPages)
			assert.NotNil(t, page.Products)
		})
	}

	last := Apply(products, Query{Page: 3, Limit: 12})
	assert.Equal(t, []string{"Product 25"}, names(last.Products))
}

func TestApplyHugePageIsEmpty(t *testing.T) {
	products := numbered(2)

	var page *Page
	require.NotPanics(t, func() {
		page = Apply(products, Query{Page: math.MaxInt, Limit: 12})
	})
	assert.Empty(t, page.Products)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, math.MaxInt, page.Page)
}

func TestApplyEmpty(t *testing.T) {
	page := Apply(nil, Query{Page: 1, Limit: 12})
	assert.Empty(t, page.Products)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.TotalPages)
}

func TestApplySearchAndCategory(t *testing.T) {
	products := []*Product{
		{ID: "1", Name: "Premium Basmati Rice", Origin: "India", CategoryID: "rice", IsActive: true},
		{ID: "2", Name: "Organic Avocados", Description: "Rich in healthy fats", Origin: "Mexico", CategoryID: "fruit", IsActive: true},
		{ID: "3", Name: "Wild Rice", CategoryID: "rice", IsActive: false},
		{ID: "4", Name: "Coffee", Description: "Grown in INDIA hills", CategoryID: "drinks", IsActive: true},
	}

	page := Apply(products, Query{Search: "RICE", Page: 1, Limit: 12})
	assert.Equal(t, []string{"Premium Basmati Rice"}, names(page.Products))

	page = Apply(products, Query{Search: "india", Page: 1, Limit: 12})
	assert.Equal(t, []string{"Coffee", "Premium Basmati Rice"}, names(page.Products))

	page = Apply(products, Query{Search: "india", CategoryID: "drinks", Page: 1, Limit: 12})
	assert.Equal(t, []string{"Coffee"}, names(page.Products))

	page = Apply(products, Query{CategoryID: "rice", Page: 1, Limit: 12})
	assert.Equal(t, 1, page.Total)
}

func TestApplySortIsStable(t *testing.T) {
	products := []*Product{
		{ID: "a", Name: "Beans", Price: 5, Availability: 50, IsActive: true},
		{ID: "b", Name: "apples", Price: 2, Availability: 90, IsActive: true},
		{ID: "c", Name: "Cocoa", Price: 5, Availability: 90, IsActive: true},
		{ID: "d", Name: "Dates", Price: 2, Availability: 10, IsActive: true},
	}

	ids := func(q Query) []string {
		q.Page, q.Limit = 1, 10
		var out []string
		for _, p := range Apply(products, q).Products {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(Query{}))
	assert.Equal(t, []string{"d", "c", "a", "b"}, ids(Query{Sort: SortNameDesc}))
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(Query{Sort: SortPrice}))
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(Query{Sort: SortPriceDesc}))
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(Query{Sort: SortAvailability}))

	require.Equal(t, "a", products[0].ID, "input must not be reordered")
}

func TestQueryKeyNormalises(t *testing.T) {
	a := Query{Search: " Rice ", Page: 1, Limit: 12}
	b := Query{Search: "rice", Sort: SortName, Page: 1, Limit: 12}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Query{Search: "rice", Page: 2, Limit: 12}.Key())
}
