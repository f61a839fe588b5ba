package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tabiplan/internal/models/request_models"
	"tabiplan/internal/models/response_models"
	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

type WizardController struct {
	wizardService services.WizardServiceInterface
}

func NewWizardController(wizardService services.WizardServiceInterface) *WizardController {
	return &WizardController{
		wizardService: wizardService,
	}
}

func (w *WizardController) StartSession(c *gin.Context) {
	var req request_models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := w.wizardService.StartSession(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Session started")
}

func (w *WizardController) GetSession(c *gin.Context) {
	view, err := w.wizardService.GetSession(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Session fetched")
}

func (w *WizardController) SubmitActivity(c *gin.Context) {
	var req request_models.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := w.wizardService.SubmitActivity(c.Request.Context(), c.Param("id"), req.Activity)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Activity recorded")
}

func (w *WizardController) LoadDestinations(c *gin.Context) {
	view, err := w.wizardService.LoadDestinations(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Destinations suggested")
}

func (w *WizardController) LoadMoreDestinations(c *gin.Context) {
	view, err := w.wizardService.LoadMoreDestinations(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "More destinations suggested")
}

func (w *WizardController) SelectDestination(c *gin.Context) {
	var req request_models.SelectDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := w.wizardService.SelectDestination(c.Request.Context(), c.Param("id"), req.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Destination selected")
}

func (w *WizardController) SetUserLocation(c *gin.Context) {
	var req request_models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	coords := response_models.Coordinates{Lat: req.Lat, Lng: req.Lng}
	view, err := w.wizardService.SetUserLocation(c.Request.Context(), c.Param("id"), coords)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Location recorded")
}

func (w *WizardController) SubmitDetails(c *gin.Context) {
	var req request_models.DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := w.wizardService.SubmitDetails(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Details recorded")
}

func (w *WizardController) GeneratePlan(c *gin.Context) {
	view, err := w.wizardService.GeneratePlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Plan generated")
}

func (w *WizardController) Back(c *gin.Context) {
	view, err := w.wizardService.Back(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, view, "Stepped back")
}

func (w *WizardController) SavePlan(c *gin.Context) {
	record, err := w.wizardService.SavePlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, record, "Plan saved")
}
