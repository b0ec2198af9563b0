package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/demandhub/consultancy-api/internal/core/ports"
)

type CampaignHandler struct {
	service ports.CampaignService
}

func NewCampaignHandler(service ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// Create
//
// @Summary      Create a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      campaignRequest  true  "Campaign"
// @Success      200   {object}  domain.Campaign
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req campaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	campaign, err := h.service.Create(c.Request().Context(), req.toInput(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// List
//
// @Summary      List campaigns
// @Description  Returns at most 1000 campaigns.
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Campaign
// @Failure      401  {object}  errorResponse
// @Router       /campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	campaigns, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaigns)
}

// Get
//
// @Summary      Get a campaign
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Campaign ID"
// @Success      200  {object}  domain.Campaign
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	campaign, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Update replaces every editable field. Omitted optional fields are cleared;
// status is kept when omitted.
//
// @Summary      Replace a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Campaign ID"
// @Param        body  body      campaignRequest  true  "Campaign"
// @Success      200   {object}  domain.Campaign
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /campaigns/{id} [put]
func (h *CampaignHandler) Update(c echo.Context) error {
	var req campaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	campaign, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}
