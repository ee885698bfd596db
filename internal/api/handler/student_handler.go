package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/core/ports"
)

type StudentHandler struct {
	dashboard ports.StudentDashboard
}

func NewStudentHandler(dashboard ports.StudentDashboard) *StudentHandler {
	return &StudentHandler{dashboard: dashboard}
}

// Opportunities lists open postings, filtered by ?search=.
func (h *StudentHandler) Opportunities(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	opps, err := h.dashboard.BrowseOpportunities(c.Request().Context(), key, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opps)
}

// Applications lists the student's own submissions.
func (h *StudentHandler) Applications(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	apps, err := h.dashboard.MyApplications(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// Apply submits the multipart application form. The CV rides as field "cv";
// all other fields are plain form values.
func (h *StudentHandler) Apply(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}

	in := ports.SubmitApplicationInput{
		OpportunityID: c.FormValue("opportunityId"),
		FirstName:     c.FormValue("firstName"),
		LastName:      c.FormValue("lastName"),
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("phone"),
		Semester:      c.FormValue("semester"),
		CGPA:          c.FormValue("cgpa"),
		Experience:    c.FormValue("experience"),
		CoverLetter:   c.FormValue("coverLetter"),
	}
	if fh, err := c.FormFile("cv"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		in.CVFilename = fh.Filename
		in.CV = f
	}

	app, err := h.dashboard.Apply(c.Request().Context(), key, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// Withdraw removes one of the student's pending applications.
func (h *StudentHandler) Withdraw(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.Withdraw(c.Request().Context(), key, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Collaborations lists open collaboration postings.
func (h *StudentHandler) Collaborations(c echo.Context) error {
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

// UpdateProfile patches the student's own profile.
func (h *StudentHandler) UpdateProfile(c echo.Context) error {
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
