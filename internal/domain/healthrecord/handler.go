package healthrecord

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

var bodyRules = validate.Body(
	validate.Rule{Field: "record_date", Type: validate.TypeDate},
	validate.Rule{Field: "symptoms", Type: validate.TypeString},
	validate.Rule{Field: "diagnosis", Type: validate.TypeString},
	validate.Rule{Field: "treatment", Type: validate.TypeString},
	validate.Rule{Field: "notes", Type: validate.TypeString},
)

var createRules = validate.Body(
	validate.Rule{Field: "record_date", Required: true, Type: validate.TypeDate},
	validate.Rule{Field: "symptoms", Type: validate.TypeString},
	validate.Rule{Field: "diagnosis", Type: validate.TypeString},
	validate.Rule{Field: "treatment", Type: validate.TypeString},
	validate.Rule{Field: "notes", Type: validate.TypeString},
)

func (h *Handler) RegisterRoutes(g *echo.Group, issuer *auth.TokenIssuer) {
	authn := auth.Authenticate(issuer)

	g.POST("", h.Create, authn, createRules)
	g.GET("", h.List, authn)
	// Listing another user's records requires doctor or admin.
	g.GET("/user/:userId", h.ListForUser, authn, auth.RequireDoctor)
	g.GET("/:id", h.Get, authn)
	g.PUT("/:id", h.Update, authn, bodyRules)
	g.DELETE("/:id", h.Delete, authn)
}

func (h *Handler) Create(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	rec, err := h.svc.Create(c.Request().Context(), userID, &in)
	if err != nil {
		return err
	}
	return respond.Created(c, rec)
}

func (h *Handler) List(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	records, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, records)
}

func (h *Handler) ListForUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid user id")
	}
	records, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, records)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid record id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	rec, err := h.svc.Get(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.OK(c, rec)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid record id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	rec, err := h.svc.Update(c.Request().Context(), id, userID, &upd)
	if err != nil {
		if errors.Is(err, ErrNoFields) || errors.Is(err, ErrUpdateDenied) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.OK(c, rec)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid record id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, ErrDeleteDenied) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.Message(c, "Health record deleted successfully")
}
