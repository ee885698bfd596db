package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

type TeacherHandler struct {
	dashboard ports.TeacherDashboard
}

func NewTeacherHandler(dashboard ports.TeacherDashboard) *TeacherHandler {
	return &TeacherHandler{dashboard: dashboard}
}

// PostOpportunity publishes a new opening.
func (h *TeacherHandler) PostOpportunity(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	var req opportunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	opp, err := h.dashboard.PostOpportunity(c.Request().Context(), key, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, opp)
}

// Opportunities lists the teacher's own postings, filtered by ?search=.
func (h *TeacherHandler) Opportunities(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	opps, err := h.dashboard.MyOpportunities(c.Request().Context(), key, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opps)
}

// Applications lists submissions against the teacher's postings.
func (h *TeacherHandler) Applications(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	apps, err := h.dashboard.ReceivedApplications(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// Decide accepts or rejects one pending application.
func (h *TeacherHandler) Decide(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	accept := req.Status == string(domain.ApplicationAccepted)
	status, err := h.dashboard.DecideApplication(c.Request().Context(), key, c.Param("id"), accept)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(status)})
}

// Collaborations lists the teacher's collaboration postings.
func (h *TeacherHandler) Collaborations(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	collabs, err := h.dashboard.Collaborations(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collabs)
}

// PostCollaboration publishes a collaboration request.
func (h *TeacherHandler) PostCollaboration(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	var req collaborationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	collab, err := h.dashboard.PostCollaboration(c.Request().Context(), key, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, collab)
}

// UpdateProfile patches the teacher's own profile.
func (h *TeacherHandler) UpdateProfile(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user, err := h.dashboard.UpdateProfile(c.Request().Context(), key, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
