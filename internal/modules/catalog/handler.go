package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/gluto-backend/internal/httpx"
	"github.com/georgemunganga/gluto-backend/internal/validate"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the public storefront endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.listProducts(DefaultPublicLimit))
	r.Get("/api/products/{id}", h.getProduct(true))
}

// RegisterAdminRoutes mounts product management. The caller guards r.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/api/admin/products", func(r chi.Router) {
		r.Get("/", h.listProducts(DefaultAdminLimit))
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct(false))
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
}

func (h *Handler) listProducts(defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r, defaultLimit)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		page, err := h.service.ListProducts(r.Context(), q)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Respond(w, http.StatusOK, page)
	}
}

func parseQuery(r *http.Request, defaultLimit int) (Query, error) {
	page, err := httpx.QueryInt(r, "page", 1)
	if err != nil {
		return Query{}, err
	}
	limit, err := httpx.QueryInt(r, "limit", defaultLimit)
	if err != nil {
		return Query{}, err
	}
	values := r.URL.Query()
	q := Query{
		CategoryID: strings.TrimSpace(values.Get("categoryId")),
		Search:     strings.TrimSpace(values.Get("search")),
		Sort:       strings.TrimSpace(values.Get("sort")),
		Page:       page,
		Limit:      limit,
	}
	if err := validate.Struct(q); err != nil {
		return Query{}, err
	}
	return q, nil
}

func (h *Handler) getProduct(activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"), activeOnly)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.Respond(w, http.StatusOK, p)
	}
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
