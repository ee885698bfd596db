package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/core/ports"
)

type OrganizationHandler struct {
	dashboard ports.OrganizationDashboard
}

func NewOrganizationHandler(dashboard ports.OrganizationDashboard) *OrganizationHandler {
	return &OrganizationHandler{dashboard: dashboard}
}

// Partnerships lists the organization's partnership offers.
func (h *OrganizationHandler) Partnerships(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	parts, err := h.dashboard.Partnerships(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parts)
}

// Events lists the organization's campus events.
func (h *OrganizationHandler) Events(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	events, err := h.dashboard.Events(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Profile returns the organization's own record.
func (h *OrganizationHandler) Profile(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	profile, err := h.dashboard.Profile(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
