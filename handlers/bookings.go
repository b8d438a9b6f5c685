package handlers

import (
	"context"
	"net/http"

	bookingRepo "commit/database/repository/booking"
	"commit/middleware"
	"commit/models"
	"commit/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type BookingLister interface {
	ListForUser(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error)
}

type BookingHandler struct {
	Bookings BookingLister
}

func NewBookingHandler(bookings BookingLister) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

// ListBookingsHandler handles GET /bookings for the authenticated account.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	acc, ok := middleware.CurrentAccount(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
		return
	}

	filter := bookingRepo.BookingFilter{UserID: acc.ID, UserType: acc.UserType}
	if raw := c.Query("status"); raw != "" {
		status := models.BookingStatus(raw)
		if !status.Valid() {
			utils.JSONError(c, http.StatusBadRequest, "Status non valido")
			return
		}
		filter.Status = status
	}
	var err error
	if filter.Limit, err = cast.ToIntE(c.DefaultQuery("limit", "50")); err != nil || filter.Limit < 0 {
		utils.JSONError(c, http.StatusBadRequest, "limit non valido")
		return
	}
	if filter.Skip, err = cast.ToIntE(c.DefaultQuery("skip", "0")); err != nil || filter.Skip < 0 {
		utils.JSONError(c, http.StatusBadRequest, "skip non valido")
		return
	}

	bookings, err := h.Bookings.ListForUser(c.Request.Context(), filter)
	if err != nil {
		getLogger(c).Error("Booking listing failed", zap.String("user_id", acc.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Errore durante il recupero delle prenotazioni")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(bookings),
		"bookings": bookings,
	})
}
