package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/chrisng16/waitlist/internal/models"
	"github.com/chrisng16/waitlist/internal/service"
	"github.com/labstack/echo/v4"
)

type StoreHandler struct {
	svc service.StoreService
}

func NewStoreHandler(svc service.StoreService) *StoreHandler {
	return &StoreHandler{svc: svc}
}

func (h *StoreHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/verify-passcode", h.VerifyPasscode)

	stores := e.Group("/api/v1/stores")
	stores.GET("/:id", h.GetStore)
	stores.GET("/login/:loginId", h.GetStoreByLoginID)
}

func (h *StoreHandler) GetStore(c echo.Context) error {
	store, err := h.svc.GetStore(c.Request().Context(), c.Param("id"))
	return h.storeResponse(c, store, err)
}

func (h *StoreHandler) GetStoreByLoginID(c echo.Context) error {
	store, err := h.svc.GetStoreByLoginID(c.Request().Context(), c.Param("loginId"))
	return h.storeResponse(c, store, err)
}

func (h *StoreHandler) storeResponse(c echo.Context, store *models.Store, err error) error {
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}

func (h *StoreHandler) VerifyPasscode(c echo.Context) error {
	var req dto.VerifyPasscodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ok, err := h.svc.VerifyPasscode(c.Request().Context(), req.StoreLoginID, req.Passcode)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		slog.Info("passcode rejected", "store_login_id", req.StoreLoginID)
	}

	return c.JSON(http.StatusOK, dto.VerifyPasscodeResponse{Success: ok})
}
