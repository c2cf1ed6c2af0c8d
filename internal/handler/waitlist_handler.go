package handler

import (
	"errors"
	"net/http"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/chrisng16/waitlist/internal/form"
	"github.com/chrisng16/waitlist/internal/models"
	"github.com/chrisng16/waitlist/internal/service"
	"github.com/labstack/echo/v4"
)

type WaitlistHandler struct {
	svc service.WaitlistService
}

func NewWaitlistHandler(svc service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

func (h *WaitlistHandler) RegisterRoutes(e *echo.Echo) {
	stores := e.Group("/api/v1/stores")
	stores.GET("/:id/queue", h.GetQueue)
	stores.GET("/:id/waitlist", h.ListEntries)
	stores.POST("/:id/waitlist", h.JoinWaitlist)

	entries := e.Group("/api/v1/waitlist")
	entries.GET("/:id", h.GetEntry)
	entries.PATCH("/:id/status", h.UpdateStatus)
}

func (h *WaitlistHandler) JoinWaitlist(c echo.Context) error {
	storeID := c.Param("id")
	if storeID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid store id")
	}

	var req dto.JoinWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entry, err := h.svc.Join(c.Request().Context(), storeID, form.JoinWaitlist{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		PartySize: req.PartySize,
	})
	if err != nil {
		if fields := form.FieldMessages(err); fields != nil {
			return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
				Message: "validation failed",
				Fields:  fields,
			})
		}
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrWaitlistClosed):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *WaitlistHandler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entry, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, req.PhoneLast4)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEntryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPhoneMismatch):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *WaitlistHandler) GetEntry(c echo.Context) error {
	entry, err := h.svc.GetEntry(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *WaitlistHandler) ListEntries(c echo.Context) error {
	var status *models.EntryStatus
	if s := c.QueryParam("status"); s != "" {
		es := models.EntryStatus(s)
		if !es.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		status = &es
	}

	entries, err := h.svc.ListEntries(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		resp[i] = dto.ToEntryResponse(&entries[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *WaitlistHandler) GetQueue(c echo.Context) error {
	positions, err := h.svc.ListQueue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToQueueResponse(positions))
}
