package medication

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
	validate.Rule{Field: "medication_name", Required: true, Type: validate.TypeString},
	validate.Rule{Field: "frequency", Required: true, Type: validate.TypeString},
	validate.Rule{Field: "start_date", Required: true, Type: validate.TypeDate},
	validate.Rule{Field: "end_date", Type: validate.TypeDate},
	validate.Rule{Field: "time_slots", Required: true, Type: validate.TypeStringArray, Items: validate.TypeTime},
)

var updateRules = validate.Body(
	validate.Rule{Field: "medication_name", Type: validate.TypeString},
	validate.Rule{Field: "frequency", Type: validate.TypeString},
	validate.Rule{Field: "start_date", Type: validate.TypeDate},
	validate.Rule{Field: "end_date", Type: validate.TypeDate},
	validate.Rule{Field: "time_slots", Type: validate.TypeStringArray, Items: validate.TypeTime},
)

func (h *Handler) RegisterRoutes(g *echo.Group, issuer *auth.TokenIssuer) {
	authn := auth.Authenticate(issuer)

	g.POST("", h.Create, authn, createRules)
	g.GET("", h.List, authn)
	g.GET("/today", h.Today, authn)
	// Listing another user's reminders requires doctor or admin.
	g.GET("/user/:userId", h.ListForUser, authn, auth.RequireDoctor)
	g.GET("/:id", h.Get, authn)
	g.PUT("/:id", h.Update, authn, updateRules)
	g.DELETE("/:id", h.Delete, authn)
}

func (h *Handler) Create(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	rem, err := h.svc.Create(c.Request().Context(), userID, &in)
	if err != nil {
		if errors.Is(err, ErrDateRange) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.Created(c, rem)
}

func (h *Handler) List(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	reminders, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, reminders)
}

func (h *Handler) Today(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	reminders, err := h.svc.Today(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, reminders)
}

func (h *Handler) ListForUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid user id")
	}
	reminders, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, reminders)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid reminder id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	rem, err := h.svc.Get(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.OK(c, rem)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid reminder id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	rem, err := h.svc.Update(c.Request().Context(), id, userID, &upd)
	if err != nil {
		if errors.Is(err, ErrNoFields) || errors.Is(err, ErrUpdateDenied) ||
			errors.Is(err, ErrEmptySlots) || errors.Is(err, ErrDateRange) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.OK(c, rem)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid reminder id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, ErrDeleteDenied) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.Message(c, "Medication reminder deleted successfully")
}
