package consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/auth"
	"github.com/meditrack/meditrack/internal/platform/validate"
	"github.com/meditrack/meditrack/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

var createRules = validate.Body(
	validate.Rule{Field: "consultation_date", Required: true, Type: validate.TypeDate},
	validate.Rule{Field: "consultation_time", Required: true, Type: validate.TypeTime},
	validate.Rule{Field: "doctor_id", Type: validate.TypeNumber},
	validate.Rule{Field: "status", Type: validate.TypeString, Enum: []string{StatusScheduled, StatusCompleted, StatusCancelled}},
)

// No status rule: the patient update path ignores status entirely.
// Transitions go through PATCH /:id/status behind the doctor gate.
var updateRules = validate.Body(
	validate.Rule{Field: "consultation_date", Type: validate.TypeDate},
	validate.Rule{Field: "consultation_time", Type: validate.TypeTime},
	validate.Rule{Field: "doctor_id", Type: validate.TypeNumber},
)

func (h *Handler) RegisterRoutes(g *echo.Group, issuer *auth.TokenIssuer) {
	authn := auth.Authenticate(issuer)

	g.POST("", h.Create, authn, createRules)
	g.GET("", h.List, authn)
	g.GET("/upcoming", h.Upcoming, authn)
	g.GET("/doctor", h.ForDoctor, authn, auth.RequireDoctor)
	g.GET("/:id", h.Get, authn)
	g.PUT("/:id", h.Update, authn, updateRules)
	g.PATCH("/:id/status", h.UpdateStatus, authn, auth.RequireDoctor)
	g.DELETE("/:id", h.Delete, authn)
}

func (h *Handler) Create(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	con, err := h.svc.Create(c.Request().Context(), userID, &in)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.Created(c, con)
}

func (h *Handler) List(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	consultations, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, consultations)
}

func (h *Handler) Upcoming(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	consultations, err := h.svc.Upcoming(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, consultations)
}

func (h *Handler) ForDoctor(c echo.Context) error {
	doctorID := auth.UserIDFromContext(c.Request().Context())
	consultations, err := h.svc.ForDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return err
	}
	return respond.OK(c, consultations)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid consultation id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	con, err := h.svc.Get(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.OK(c, con)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid consultation id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	con, err := h.svc.Update(c.Request().Context(), id, userID, &upd)
	if err != nil {
		if errors.Is(err, ErrNoFields) || errors.Is(err, ErrUpdateDenied) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.OK(c, con)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid consultation id")
	}
	doctorID := auth.UserIDFromContext(c.Request().Context())
	var in struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	con, err := h.svc.UpdateStatus(c.Request().Context(), id, doctorID, in.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrUpdateDenied) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.OK(c, con)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid consultation id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, ErrDeleteDenied) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.Message(c, "Consultation deleted successfully")
}
