package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

type AdminHandler struct {
	dashboard ports.AdminDashboard
}

func NewAdminHandler(dashboard ports.AdminDashboard) *AdminHandler {
	return &AdminHandler{dashboard: dashboard}
}

// Users lists accounts, filtered by ?search=.
func (h *AdminHandler) Users(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	users, err := h.dashboard.Users(c.Request().Context(), key, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Approve activates an account.
func (h *AdminHandler) Approve(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.ApproveUser(c.Request().Context(), key, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reject declines a pending account.
func (h *AdminHandler) Reject(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.RejectUser(c.Request().Context(), key, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an account permanently.
func (h *AdminHandler) Delete(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.DeleteUser(c.Request().Context(), key, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats returns the aggregate counters block.
func (h *AdminHandler) Stats(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	stats, err := h.dashboard.Stats(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Opportunities lists every posting for the admin overview.
func (h *AdminHandler) Opportunities(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	opps, err := h.dashboard.AllOpportunities(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opps)
}

// Reports lists moderation reports with the open count for the alert badge.
func (h *AdminHandler) Reports(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	reports, open, err := h.dashboard.Reports(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"reports": reports, "open": open})
}

// Settings returns the current site configuration.
func (h *AdminHandler) Settings(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	settings, err := h.dashboard.Settings(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings validates and saves the site configuration.
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	saved, err := h.dashboard.UpdateSettings(c.Request().Context(), key, domain.PortalSettings{
		SiteTitle:    req.SiteTitle,
		SupportEmail: req.SupportEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

// AssistantAnalytics returns assistant usage aggregates.
func (h *AdminHandler) AssistantAnalytics(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	analytics, err := h.dashboard.AssistantAnalytics(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analytics)
}
