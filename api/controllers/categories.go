package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aresapparel/apparel-backend/api/responses"
	"github.com/aresapparel/apparel-backend/api/validators"
	categorysvc "github.com/aresapparel/apparel-backend/internal/categories"
	productsvc "github.com/aresapparel/apparel-backend/internal/products"
	"github.com/aresapparel/apparel-backend/pkg/config"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
	"github.com/aresapparel/apparel-backend/pkg/logger"
)

// CategoryList serves every category ordered by name.
func CategoryList(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list, "")
	}
}

// CategoryGet serves one category by id. The route shares its wildcard
// segment with the slug-based page route, hence the "category" param name.
func CategoryGet(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		category, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category, "")
	}
}

type categoryHero struct {
	Image    string `json:"img"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type categoryPageCategory struct {
	ID   uuid.UUID    `json:"id"`
	Name string       `json:"name"`
	Slug string       `json:"slug"`
	Hero categoryHero `json:"hero"`
}

type categoryPagePayload struct {
	Category categoryPageCategory `json:"category"`
	Products pagedResponse        `json:"products"`
}

func heroFor(slug, categoryName string, assets config.AssetsConfig) categoryHero {
	heroes := map[string]categoryHero{
		"men": {
			Image:    assets.StaticImageURL("images/heroes/men.jpg"),
			Title:    "MEN'S WARDROBE",
			Subtitle: "Bold fits for every day.",
		},
		"women": {
			Image:    assets.StaticImageURL("images/heroes/women.jpg"),
			Title:    "WOMEN'S WARDROBE",
			Subtitle: "Statement pieces & everyday essentials.",
		},
		"footwear": {
			Image:    assets.StaticImageURL("images/heroes/sneakers.jpeg"),
			Title:    "FOOTWEAR",
			Subtitle: "Step into comfort and style.",
		},
		"accessories": {
			Image:    assets.StaticImageURL("images/heroes/watch.jpg"),
			Title:    "ACCESSORIES",
			Subtitle: "Finish your look with the right detail.",
		},
	}
	if hero, ok := heroes[slug]; ok {
		return hero
	}
	return categoryHero{
		Image: assets.StaticImageURL("images/heroes/default.jpg"),
		Title: strings.ToUpper(categoryName),
	}
}

// CategoryPage aggregates a category, its hero banner, and the first page of
// its products for the storefront category screen.
func CategoryPage(categories categorysvc.Service, products productsvc.Service, assets config.AssetsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.ToLower(chi.URLParam(r, "category"))
		category, err := categories.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		p, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, meta, err := products.List(r.Context(), productsvc.ListQuery{CategorySlug: slug, Page: p})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := categoryPagePayload{
			Category: categoryPageCategory{
				ID:   category.ID,
				Name: category.Name,
				Slug: category.Slug,
				Hero: heroFor(slug, category.Name, assets),
			},
			Products: pagedResponse{Items: items, Meta: meta},
		}

		responses.WriteSuccess(w, payload, "")
	}
}

// CategoryProducts serves the paginated products of one category.
func CategoryProducts(categories categorysvc.Service, products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		category, err := categories.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		p, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, meta, err := products.List(r.Context(), productsvc.ListQuery{CategorySlug: category.Slug, Page: p})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pagedResponse{Items: items, Meta: meta}, "")
	}
}

// CategoryStats serves product counts and the price range of a category.
func CategoryStats(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		stats, err := svc.Stats(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats, "")
	}
}

type upsertCategoryRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=120"`
	Slug  string  `json:"slug,omitempty"`
	Image *string `json:"image,omitempty"`
}

// AdminCategoryCreate adds a category.
func AdminCategoryCreate(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), categorysvc.UpsertCategoryInput{
			Name:  payload.Name,
			Slug:  payload.Slug,
			Image: payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category, "category created")
	}
}

// AdminCategoryUpdate rewrites a category record.
func AdminCategoryUpdate(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		var payload upsertCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), id, categorysvc.UpsertCategoryInput{
			Name:  payload.Name,
			Slug:  payload.Slug,
			Image: payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category, "category updated")
	}
}

// AdminCategoryDelete removes a category. Products must be moved first, the
// database restricts deletes of categories still in use.
func AdminCategoryDelete(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil, "category deleted")
	}
}
