package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/HnM-Co/Yak-Tech/internal/catalog"
	"github.com/HnM-Co/Yak-Tech/internal/utils"
	"github.com/HnM-Co/Yak-Tech/pkg/mfds"
)

// CatalogHandler serves read queries over the in-memory catalog.
type CatalogHandler struct {
	catalog *catalog.Catalog
	mfds    *mfds.Client

	imageMu    sync.Mutex
	imageCache map[string]string
}

// NewCatalogHandler creates a new CatalogHandler. mfdsClient may be nil
// when no identification-service key is configured.
func NewCatalogHandler(cat *catalog.Catalog, mfdsClient *mfds.Client) *CatalogHandler {
	return &CatalogHandler{
		catalog:    cat,
		mfds:       mfdsClient,
		imageCache: make(map[string]string),
	}
}

// Search handles GET /v1/drugs/search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	results := h.catalog.Search(query)

	utils.Success(c, http.StatusOK, "OK", gin.H{
		"query": query,
		"count": len(results),
		"items": results,
	})
}

// GetDrug handles GET /v1/drugs/:id
func (h *CatalogHandler) GetDrug(c *gin.Context) {
	drug, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		utils.Error(c, http.StatusNotFound, "DRUG_NOT_FOUND", "no drug with that product code")
		return
	}
	utils.Success(c, http.StatusOK, "OK", drug)
}

// GetAlternatives handles GET /v1/drugs/:id/alternatives
func (h *CatalogHandler) GetAlternatives(c *gin.Context) {
	drug, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		utils.Error(c, http.StatusNotFound, "DRUG_NOT_FOUND", "no drug with that product code")
		return
	}

	alts := h.catalog.Alternatives(drug.IngredientCode)
	utils.Success(c, http.StatusOK, "OK", gin.H{
		"ingredientCode": drug.IngredientCode,
		"count":          len(alts),
		"items":          alts,
	})
}

// Compare handles GET /v1/drugs/:id/compare
func (h *CatalogHandler) Compare(c *gin.Context) {
	cmp, ok := h.catalog.Compare(c.Param("id"))
	if !ok {
		utils.Error(c, http.StatusNotFound, "DRUG_NOT_FOUND", "no drug with that product code")
		return
	}
	utils.Success(c, http.StatusOK, "OK", cmp)
}

// GetImage handles GET /v1/drugs/:id/image, looking the product image up
// in the identification service on first request and caching it for the
// process lifetime.
func (h *CatalogHandler) GetImage(c *gin.Context) {
	if h.mfds == nil {
		utils.Error(c, http.StatusServiceUnavailable, "IMAGE_LOOKUP_DISABLED", "MFDS_API_KEY is not configured")
		return
	}

	drug, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		utils.Error(c, http.StatusNotFound, "DRUG_NOT_FOUND", "no drug with that product code")
		return
	}

	h.imageMu.Lock()
	cached, hit := h.imageCache[drug.Name]
	h.imageMu.Unlock()

	if !hit {
		img, err := h.mfds.LookupImage(c.Request.Context(), drug.Name)
		if err != nil {
			log.Warn().Err(err).Str("drug", drug.Name).Msg("image lookup failed")
			utils.Error(c, http.StatusBadGateway, "IMAGE_LOOKUP_FAILED", "identification service unavailable")
			return
		}
		cached = img
		h.imageMu.Lock()
		h.imageCache[drug.Name] = img
		h.imageMu.Unlock()
	}

	if cached == "" {
		utils.Error(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "no image for that drug")
		return
	}
	utils.Success(c, http.StatusOK, "OK", gin.H{"image": cached})
}
