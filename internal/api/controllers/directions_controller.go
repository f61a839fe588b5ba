package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tabiplan/internal/models/request_models"
	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

type DirectionsController struct {
	directionsService services.DirectionsServiceInterface
}

func NewDirectionsController(directionsService services.DirectionsServiceInterface) *DirectionsController {
	return &DirectionsController{
		directionsService: directionsService,
	}
}

func (d *DirectionsController) GetDirections(c *gin.Context) {
	var req request_models.DirectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		utils.RespondError(c, http.StatusBadRequest, "Origin and destination are required")
		return
	}

	result, err := d.directionsService.GetDirections(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Directions resolved")
}
