package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"tabiplan/internal/models/response_models"
	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

type PlansController struct {
	plansService services.PlansServiceInterface
}

func NewPlansController(plansService services.PlansServiceInterface) *PlansController {
	return &PlansController{
		plansService: plansService,
	}
}

func (p *PlansController) ListPlans(c *gin.Context) {
	items, err := p.plansService.ListPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Plans fetched")
}

func (p *PlansController) GetPlan(c *gin.Context) {
	record, err := p.plansService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, record, "Plan fetched")
}

func (p *PlansController) DeletePlan(c *gin.Context) {
	if err := p.plansService.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Plan deleted")
}

// shareBaseURL is where a shared plan opens. The request origin is a
// reasonable default when no public URL is configured.
func shareBaseURL(c *gin.Context) string {
	if base := os.Getenv("SHARE_BASE_URL"); base != "" {
		return base
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/shared"
}

func (p *PlansController) ShareLink(c *gin.Context) {
	url, err := p.plansService.ShareLink(c.Request.Context(), c.Param("id"), shareBaseURL(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"url": url}, "Share link created")
}

func (p *PlansController) ShareQR(c *gin.Context) {
	png, err := p.plansService.ShareQR(c.Request.Context(), c.Param("id"), shareBaseURL(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (p *PlansController) ToggleFavorite(c *gin.Context) {
	var item response_models.FavoriteItem
	if err := c.ShouldBindJSON(&item); err != nil || item.ID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	added, err := p.plansService.ToggleFavorite(c.Request.Context(), item)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"favorited": added}, "Favorite toggled")
}

func (p *PlansController) ListFavorites(c *gin.Context) {
	items, err := p.plansService.ListFavorites(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Favorites fetched")
}

func (p *PlansController) ListHistory(c *gin.Context) {
	entries, err := p.plansService.ListHistory(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "History fetched")
}

func (p *PlansController) ClearHistory(c *gin.Context) {
	if err := p.plansService.ClearHistory(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "History cleared")
}
