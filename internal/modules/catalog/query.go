package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Sort keys accepted by the catalog query.
const (
	SortName         = "name"
	SortNameDesc     = "name-desc"
	SortPrice        = "price"
	SortPriceDesc    = "price-desc"
	SortAvailability = "availability"
)

const (
	DefaultPublicLimit = 12
	DefaultAdminLimit  = 50
	MaxLimit           = 100
)

// Query selects one page of active products. Filters combine with AND.
type Query struct {
	CategoryID string `json:"categoryId"`
	Search     string `json:"search"`
	Sort       string `json:"sort" validate:"omitempty,oneof=name name-desc price price-desc availability"`
	Page       int    `json:"page" validate:"min=1"`
	Limit      int    `json:"limit" validate:"min=1,max=100"`
}

// Key is a canonical string form of q, used for cache keys.
func (q Query) Key() string {
	sortKey := q.Sort
	if sortKey == "" {
		sortKey = SortName
	}
	return fmt.Sprintf("c=%s|s=%s|o=%s|p=%d|l=%d",
		q.CategoryID, strings.ToLower(strings.TrimSpace(q.Search)), sortKey, q.Page, q.Limit)
}

// Page is one window of a catalog query result.
type Page struct {
	Products   []*Product `json:"products"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}

// Apply filters, sorts and slices products, which must be in creation order.
// The input slice is not modified. q must already be valid.
func Apply(products []*Product, q Query) *Page {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]*Product, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, less(matched, q.Sort))

	total := len(matched)
	page := &Page{
		Products:   []*Product{},
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}
	// Compare pages before multiplying; a huge page would overflow the offset.
	if q.Page > page.TotalPages {
		return page
	}
	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if end > total {
		end = total
	}
	page.Products = matched[start:end]
	return page
}

func matches(p *Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.Origin), search)
}

func less(ps []*Product, key string) func(i, j int) bool {
	switch key {
	case SortNameDesc:
		return func(i, j int) bool { return strings.ToLower(ps[i].Name) > strings.ToLower(ps[j].Name) }
	case SortPrice:
		return func(i, j int) bool { return ps[i].Price < ps[j].Price }
	case SortPriceDesc:
		return func(i, j int) bool { return ps[i].Price > ps[j].Price }
	case SortAvailability:
		return func(i, j int) bool { return ps[i].Availability > ps[j].Availability }
	default:
		return func(i, j int) bool { return strings.ToLower(ps[i].Name) < strings.ToLower(ps[j].Name) }
	}
}
