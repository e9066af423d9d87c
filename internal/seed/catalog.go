// Package seed loads the starter catalog and the bootstrap admin account.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/georgemunganga/gluto-backend/internal/modules/catalog"
	"github.com/georgemunganga/gluto-backend/internal/modules/category"
)

type categorySeed struct {
	Name     string
	Children []string
}

var categories = []categorySeed{
	{"AGRI FRESH PRODUCTS", []string{"Rice", "Beans", "Fruits", "Seeds", "Nuts"}},
	{"FOOD AND BEVERAGE (FMCG)", []string{"Snacks", "Drinks", "Toiletries"}},
	{"MEAT AND POULTRY PRODUCT", []string{"Eggs", "Fish", "Beef"}},
	{"PROCESSED AFRICAN FOOD AND ITEMS", []string{"Stock fish", "Egusi", "Poundo yam"}},
	{"NON FOOD PRODUCTS", []string{"Nivea cream", "Organic soaps", "Organic syrup"}},
	{"AGRONUTRITION, FERTILIZERS, SPECIAL PRODUCTS", []string{"Fertilisers", "Bio stimulants"}},
}

// products are keyed by the name of the sub-category they belong to.
var products = []struct {
	Category string
	catalog.CreateProductRequest
}{
	{"Fruits", catalog.CreateProductRequest{
		Name:         "Organic Avocados",
		Description:  "Premium organic avocados sourced from Mexico. Rich in healthy fats and vitamins.",
		Price:        2.99,
		Availability: 85,
		EanUpc:       "123456789012",
		Weight:       "200g each",
		Origin:       "Mexico",
		Packaging:    "20 pieces per carton, 40 cartons per pallet",
		LeadTime:     "3-5 days",
		ShelfLife:    "14 days",
	}},
	{"Drinks", catalog.CreateProductRequest{
		Name:         "Premium Coffee Beans",
		Description:  "Arabica coffee beans from Colombia. Medium roast with chocolate notes.",
		Price:        12.99,
		Availability: 95,
		EanUpc:       "345678901234",
		Weight:       "1kg bag",
		Origin:       "Colombia",
		Packaging:    "10 bags per carton, 20 cartons per pallet",
		LeadTime:     "7-10 days",
		ShelfLife:    "12 months",
	}},
	{"Fish", catalog.CreateProductRequest{
		Name:         "Fresh Salmon Fillets",
		Description:  "Wild-caught salmon fillets from Alaska. Sustainably sourced.",
		Price:        18.99,
		Availability: 45,
		EanUpc:       "567890123456",
		Weight:       "300g fillet",
		Origin:       "Alaska, USA",
		Packaging:    "10 fillets per carton, 15 cartons per pallet",
		LeadTime:     "1-2 days",
		ShelfLife:    "7 days frozen",
	}},
	{"Rice", catalog.CreateProductRequest{
		Name:         "Premium Basmati Rice",
		Description:  "Aged basmati rice from India. Long grain and aromatic.",
		Price:        7.99,
		Availability: 92,
		EanUpc:       "012345678901",
		Weight:       "2kg bag",
		Origin:       "India",
		Packaging:    "10 bags per carton, 15 cartons per pallet",
		LeadTime:     "10-14 days",
		ShelfLife:    "24 months",
	}},
	{"Egusi", catalog.CreateProductRequest{
		Name:         "Organic Egusi",
		Description:  "High-quality egusi seeds from Nigeria. Perfect for traditional soups.",
		Price:        5.49,
		Availability: 78,
		EanUpc:       "112233445566",
		Weight:       "500g pack",
		Origin:       "Nigeria",
		Packaging:    "20 packs per carton, 30 cartons per pallet",
		LeadTime:     "5-7 days",
		ShelfLife:    "18 months",
	}},
	{"Fertilisers", catalog.CreateProductRequest{
		Name:         "Organic Fertilizer",
		Description:  "Natural plant fertilizer made from composted materials. Rich in nutrients.",
		Price:        24.99,
		Availability: 65,
		EanUpc:       "334455667788",
		Weight:       "5kg bag",
		Origin:       "Kenya",
		Packaging:    "10 bags per carton, 25 cartons per pallet",
		LeadTime:     "3-5 days",
		ShelfLife:    "36 months",
	}},
}

// Catalog inserts the starter categories and products. It does nothing and
// returns false when any active category already exists.
func Catalog(ctx context.Context, cats category.Service, prods catalog.Service) (bool, error) {
	existing, err := cats.ListCategories(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		slog.Info("catalog already seeded", "categories", len(existing))
		return false, nil
	}

	ids := make(map[string]string)
	for _, root := range categories {
		parent, err := cats.CreateCategory(ctx, category.CreateCategoryRequest{Name: root.Name})
		if err != nil {
			return false, fmt.Errorf("seed category %q: %w", root.Name, err)
		}
		for _, name := range root.Children {
			child, err := cats.CreateCategory(ctx, category.CreateCategoryRequest{Name: name, ParentID: &parent.ID})
			if err != nil {
				return false, fmt.Errorf("seed category %q: %w", name, err)
			}
			ids[name] = child.ID
		}
	}

	for _, p := range products {
		req := p.CreateProductRequest
		req.CategoryID = ids[p.Category]
		if _, err := prods.CreateProduct(ctx, req); err != nil {
			return false, fmt.Errorf("seed product %q: %w", req.Name, err)
		}
	}
	slog.Info("catalog seeded", "categories", len(ids)+len(categories), "products", len(products))
	return true, nil
}
