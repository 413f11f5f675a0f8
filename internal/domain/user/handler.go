package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/auth"
	"github.com/meditrack/meditrack/internal/platform/validate"
	"github.com/meditrack/meditrack/pkg/pagination"
	"github.com/meditrack/meditrack/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group, issuer *auth.TokenIssuer) {
	authn := auth.Authenticate(issuer)

	g.POST("/register", h.Register, validate.Body(
		validate.Rule{Field: "name", Required: true, Type: validate.TypeString},
		validate.Rule{Field: "email", Required: true, Type: validate.TypeEmail},
		validate.Rule{Field: "password", Required: true, Type: validate.TypeString, MinLen: 6},
		validate.Rule{Field: "role", Type: validate.TypeString, Enum: []string{RolePatient, RoleDoctor, RoleAdmin}},
		validate.Rule{Field: "date_of_birth", Type: validate.TypeDate},
	))
	g.POST("/login", h.Login, validate.Body(
		validate.Rule{Field: "email", Required: true, Type: validate.TypeEmail},
		validate.Rule{Field: "password", Required: true, Type: validate.TypeString},
	))

	g.GET("/me", h.Me, authn)
	g.PUT("/me/password", h.UpdatePassword, authn)

	// Public doctor discovery. Registered before /:id so the static
	// segments win the match.
	g.GET("/doctors", h.ListDoctors)
	g.GET("/doctors/categories", h.DoctorCategories)
	g.GET("/doctors/specializations", h.DoctorSpecializations)
	g.GET("/doctors/filter", h.ListDoctors)

	g.GET("/:id", h.GetUser, authn, auth.RequireOwnerOrAdmin("id"))
	g.PUT("/:id", h.UpdateUser, authn, auth.RequireOwnerOrAdmin("id"), validate.Body(
		validate.Rule{Field: "email", Type: validate.TypeEmail},
		validate.Rule{Field: "date_of_birth", Type: validate.TypeDate},
	))
	g.DELETE("/:id", h.DeleteUser, authn, auth.RequireOwnerOrAdmin("id"))
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	result, err := h.svc.Register(c.Request().Context(), &in)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return err
	}
	return respond.Created(c, result)
}

func (h *Handler) Login(c echo.Context) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	result, err := h.svc.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return respond.Error(c, http.StatusUnauthorized, err.Error())
		}
		return err
	}
	return respond.OK(c, result)
}

func (h *Handler) Me(c echo.Context) error {
	id := auth.UserIDFromContext(c.Request().Context())
	u, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.OK(c, u)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid user id")
	}
	u, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.OK(c, u)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid user id")
	}
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	u, err := h.svc.UpdateUser(c.Request().Context(), id, &upd)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFields), errors.Is(err, ErrEmailTaken):
			return respond.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.OK(c, u)
}

func (h *Handler) UpdatePassword(c echo.Context) error {
	id := auth.UserIDFromContext(c.Request().Context())
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return respond.Error(c, http.StatusBadRequest, "Current password and new password are required")
	}
	if err := h.svc.UpdatePassword(c.Request().Context(), id, in.CurrentPassword, in.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			return respond.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.Message(c, "Password updated successfully")
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, "Invalid user id")
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.Error(c, http.StatusNotFound, err.Error())
		}
		return err
	}
	return respond.Message(c, "User deleted successfully")
}

func (h *Handler) ListDoctors(c echo.Context) error {
	f := DoctorFilter{
		Specialization: c.QueryParam("specialization"),
		Category:       c.QueryParam("category"),
	}

	// Paging is opt-in; without limit/offset the full set is returned.
	paged := c.QueryParam("limit") != "" || c.QueryParam("offset") != ""
	var p pagination.Params
	if paged {
		p = pagination.FromContext(c)
		f.Limit = p.Limit
		f.Offset = p.Offset
	}

	doctors, err := h.svc.ListDoctors(c.Request().Context(), f)
	if err != nil {
		return err
	}
	if !paged {
		return respond.OK(c, doctors)
	}
	total, err := h.svc.CountDoctors(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return respond.OK(c, pagination.NewPage(doctors, total, p.Limit, p.Offset))
}

func (h *Handler) DoctorCategories(c echo.Context) error {
	categories, err := h.svc.DoctorCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return respond.OK(c, categories)
}

func (h *Handler) DoctorSpecializations(c echo.Context) error {
	specs, err := h.svc.DoctorSpecializations(c.Request().Context())
	if err != nil {
		return err
	}
	return respond.OK(c, specs)
}
