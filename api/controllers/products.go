package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aresapparel/apparel-backend/api/responses"
	"github.com/aresapparel/apparel-backend/api/validators"
	productsvc "github.com/aresapparel/apparel-backend/internal/products"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
	"github.com/aresapparel/apparel-backend/pkg/logger"
	"github.com/aresapparel/apparel-backend/pkg/pagination"
)

const (
	maxSearchQueryLen = 120
	maxPerPage        = 100
)

type pagedResponse struct {
	Items any `json:"items"`
	Meta  any `json:"meta"`
}

func parsePageParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, maxPerPage)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PerPage: perPage}, nil
}

// ProductList serves the paginated catalog, optionally scoped to a category.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := productsvc.ListQuery{
			CategorySlug: validators.SanitizeString(r.URL.Query().Get("category"), maxSearchQueryLen),
			FeaturedOnly: r.URL.Query().Get("featured") == "true",
			Page:         p,
		}

		items, meta, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pagedResponse{Items: items, Meta: meta}, "")
	}
}

// ProductSearch filters the catalog by name match and price range.
func ProductSearch(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := productsvc.SearchQuery{
			Query:        validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQueryLen),
			CategorySlug: validators.SanitizeString(r.URL.Query().Get("category"), maxSearchQueryLen),
			Page:         p,
		}
		if cents, ok, err := validators.ParseQueryCents(r, "min_price"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if ok {
			query.MinPriceCents = &cents
		}
		if cents, ok, err := validators.ParseQueryCents(r, "max_price"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if ok {
			query.MaxPriceCents = &cents
		}

		items, meta, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pagedResponse{Items: items, Meta: meta}, "")
	}
}

// ProductFeatured serves the curated homepage slice of the catalog.
func ProductFeatured(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Featured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items, "")
	}
}

// ProductGet resolves a product by UUID first, slug second.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idOrSlug := chi.URLParam(r, "idOrSlug")
		if idOrSlug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id or slug required"))
			return
		}

		product, err := svc.GetByIDOrSlug(r.Context(), idOrSlug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product, "")
	}
}

type upsertProductRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents" validate:"required,gt=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Image       *string   `json:"image,omitempty"`
	Sizes       []string  `json:"sizes,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	IsFeatured  *bool     `json:"is_featured,omitempty"`
}

func (p upsertProductRequest) toInput() productsvc.UpsertProductInput {
	return productsvc.UpsertProductInput{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		Image:       p.Image,
		Sizes:       p.Sizes,
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
	}
}

// AdminProductCreate adds a product to the catalog.
func AdminProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product, "product created")
	}
}

// AdminProductUpdate rewrites a product record.
func AdminProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload upsertProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product, "product updated")
	}
}

// AdminProductDelete removes a product. Existing cart rows survive and are
// surfaced to their owners as unavailable.
func AdminProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil, "product deleted")
	}
}
