package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/aresapparel/apparel-backend/api/responses"
	productsvc "github.com/aresapparel/apparel-backend/internal/products"
	"github.com/aresapparel/apparel-backend/pkg/config"
	"github.com/aresapparel/apparel-backend/pkg/db/models"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
	"github.com/aresapparel/apparel-backend/pkg/logger"
)

// mainCategorySlugs are the storefront's four navigation tiles.
var mainCategorySlugs = []string{"men", "women", "footwear", "accessories"}

type categoryFinder interface {
	FindBySlugs(ctx context.Context, slugs []string) (map[string]models.Category, error)
}

type carouselSlide struct {
	ID       int    `json:"id"`
	Image    string `json:"image"`
	Alt      string `json:"alt"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type homepageCategory struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image string    `json:"image"`
	Route string    `json:"route"`
}

type appInfo struct {
	Title          string `json:"title"`
	WelcomeMessage string `json:"welcome_message"`
}

type homepagePayload struct {
	Carousel         []carouselSlide         `json:"carousel"`
	Categories       []homepageCategory      `json:"categories"`
	FeaturedProducts []productsvc.ProductDTO `json:"featured_products"`
	AppInfo          appInfo                 `json:"app_info"`
}

func carouselSlides(assets config.AssetsConfig) []carouselSlide {
	return []carouselSlide{
		{
			ID:       1,
			Image:    assets.StaticImageURL("images/Ares3.jpg"),
			Alt:      "Slide 1",
			Title:    "ARES Collection",
			Subtitle: "Where power meets fashion",
		},
		{
			ID:       2,
			Image:    assets.StaticImageURL("images/hero3.webp"),
			Alt:      "Slide 2",
			Title:    "New Arrivals",
			Subtitle: "Discover the latest trends",
		},
		{
			ID:       3,
			Image:    assets.StaticImageURL("images/hero2.jpg"),
			Alt:      "Slide 3",
			Title:    "Style & Comfort",
			Subtitle: "Perfect for every occasion",
		},
	}
}

// Homepage aggregates the carousel, navigation categories, and the featured
// slice of the catalog into one response for the storefront landing screen.
func Homepage(categories categoryFinder, products productsvc.Service, assets config.AssetsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := categories.FindBySlugs(r.Context(), mainCategorySlugs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load categories"))
			return
		}

		tiles := make([]homepageCategory, 0, len(mainCategorySlugs))
		for _, slug := range mainCategorySlugs {
			category, ok := found[slug]
			if !ok {
				continue
			}
			tiles = append(tiles, homepageCategory{
				ID:    category.ID,
				Name:  category.Name,
				Slug:  category.Slug,
				Image: assets.StaticImageURL(fmt.Sprintf("images/categories/%s.jpg", category.Slug)),
				Route: "/products/" + category.Slug,
			})
		}

		featured, err := products.Featured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := homepagePayload{
			Carousel:         carouselSlides(assets),
			Categories:       tiles,
			FeaturedProducts: featured,
			AppInfo: appInfo{
				Title:          "ARES",
				WelcomeMessage: "Where power meets fashion. Discover bold apparel, empowering accessories, and footwear designed to make you stand out.",
			},
		}

		responses.WriteSuccess(w, payload, "Homepage data retrieved successfully")
	}
}
