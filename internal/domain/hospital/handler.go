package hospital

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
	validate.Rule{Field: "hospital_name", Required: true, Type: validate.TypeString},
)

// RegisterRoutes mounts the favorites CRUD and the nearby search under
// the hospitals group. The bed-availability bridge registers its own
// public routes on the same group.
func (h *Handler) RegisterRoutes(g *echo.Group, issuer *auth.TokenIssuer) {
	authn := auth.Authenticate(issuer)

	g.POST("/favorites", h.Create, authn, createRules)
	g.GET("/favorites", h.List, authn)
	g.GET("/favorites/:id", h.Get, authn)
	g.PUT("/favorites/:id", h.Update, authn)
	g.DELETE("/favorites/:id", h.Delete, authn)
	g.GET("/nearby", h.Nearby, authn)
}

func (h *Handler) Create(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	f, err := h.svc.Create(c.Request().Context(), userID, &in)
	if err != nil {
		return err
	}
	return respond.Created(c, f)
}

func (h *Handler) List(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	favorites, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, favorites)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid hospital id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	f, err := h.svc.Get(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.OK(c, f)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid hospital id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	f, err := h.svc.Update(c.Request().Context(), id, userID, &upd)
	if err != nil {
		if errors.Is(err, ErrNoFields) || errors.Is(err, ErrUpdateDenied) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.OK(c, f)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid hospital id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, ErrDeleteDenied) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.Message(c, "Favorite hospital deleted successfully")
}

func (h *Handler) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "latitude and longitude are required")
	}
	long, err := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "latitude and longitude are required")
	}
	radius := 5000
	if rs := c.QueryParam("radius"); rs != "" {
		if r, err := strconv.Atoi(rs); err == nil {
			radius = r
		}
	}
	return respond.OK(c, h.svc.Nearby(lat, long, radius))
}
