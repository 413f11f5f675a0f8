package bedinfo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public bed-availability endpoints. They
// never fail with upstream errors; degraded responses carry
// source="synthetic".
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/get-provinces", h.Provinces)
	g.GET("/get-cities", h.Cities)
	g.GET("/get-hospitals", h.Hospitals)
	g.GET("/get-bed-detail", h.BedDetail)
	g.GET("/get-hospital-map", h.HospitalMap)
}

func (h *Handler) Provinces(c echo.Context) error {
	return respond.OK(c, h.svc.Provinces(c.Request().Context()))
}

func (h *Handler) Cities(c echo.Context) error {
	provinceID := c.QueryParam("provinceid")
	if provinceID == "" {
		return respond.Error(c, http.StatusBadRequest, "Province ID is required")
	}
	return respond.OK(c, h.svc.Cities(c.Request().Context(), provinceID))
}

func (h *Handler) Hospitals(c echo.Context) error {
	provinceID, cityID := c.QueryParam("provinceid"), c.QueryParam("cityid")
	if provinceID == "" || cityID == "" {
		return respond.Error(c, http.StatusBadRequest, "Province ID and City ID are required")
	}
	hospitalType, _ := strconv.Atoi(c.QueryParam("type"))
	return respond.OK(c, h.svc.Hospitals(c.Request().Context(), hospitalType, provinceID, cityID))
}

func (h *Handler) BedDetail(c echo.Context) error {
	hospitalID := c.QueryParam("hospitalid")
	if hospitalID == "" {
		return respond.Error(c, http.StatusBadRequest, "Hospital ID is required")
	}
	hospitalType, _ := strconv.Atoi(c.QueryParam("type"))
	return respond.OK(c, h.svc.BedDetail(c.Request().Context(), hospitalID, hospitalType))
}

func (h *Handler) HospitalMap(c echo.Context) error {
	hospitalID := c.QueryParam("hospitalid")
	if hospitalID == "" {
		return respond.Error(c, http.StatusBadRequest, "Hospital ID is required")
	}
	return respond.OK(c, h.svc.HospitalMap(c.Request().Context(), hospitalID))
}
