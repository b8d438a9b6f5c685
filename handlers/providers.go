package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	providerRepo "commit/database/repository/provider"
	"commit/models"
	"commit/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const maxProviderPage = 100

// ProviderFinder is the read side of the provider repository.
type ProviderFinder interface {
	Search(ctx context.Context, criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error)
	GetByID(ctx context.Context, id string) (*models.Provider, error)
}

type ProviderHandler struct {
	Providers ProviderFinder
}

func NewProviderHandler(providers ProviderFinder) *ProviderHandler {
	return &ProviderHandler{Providers: providers}
}

// ListProvidersHandler handles GET /providers.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	criteria, err := providerCriteria(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	providers, err := h.Providers.Search(c.Request.Context(), criteria)
	if err != nil {
		getLogger(c).Error("Provider search failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Errore durante la ricerca")
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(providers),
		"providers": providers,
	})
}

// providerCriteria reads the listing filters from the query string.
// limit is capped at maxProviderPage.
func providerCriteria(c *gin.Context) (providerRepo.ProviderSearchCriteria, error) {
	var criteria providerRepo.ProviderSearchCriteria

	if raw := c.Query("category"); raw != "" {
		category := models.ServiceCategory(raw)
		if !category.Valid() {
			return criteria, errors.New("Categoria non valida")
		}
		criteria.Category = category
	}
	criteria.City = strings.TrimSpace(c.Query("city"))
	if raw := c.Query("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				criteria.Tags = append(criteria.Tags, tag)
			}
		}
	}

	var err error
	if criteria.MinRating, err = cast.ToFloat64E(c.DefaultQuery("min_rating", "0")); err != nil {
		return criteria, errors.New("min_rating non valido")
	}
	if criteria.Limit, err = cast.ToIntE(c.DefaultQuery("limit", "20")); err != nil || criteria.Limit < 0 {
		return criteria, errors.New("limit non valido")
	}
	if criteria.Skip, err = cast.ToIntE(c.DefaultQuery("skip", "0")); err != nil || criteria.Skip < 0 {
		return criteria, errors.New("skip non valido")
	}
	if criteria.Limit > maxProviderPage {
		criteria.Limit = maxProviderPage
	}
	return criteria, nil
}

// GetProviderHandler handles GET /providers/:id.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	id := c.Param("id")
	provider, err := h.Providers.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Provider non trovato")
			return
		}
		getLogger(c).Error("Provider lookup failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Errore durante il recupero dei dati")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "provider": provider})
}
