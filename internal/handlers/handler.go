package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/availability"
	"github.com/harentsoaR/doctors-portal/internal/booking"
	"github.com/harentsoaR/doctors-portal/internal/middleware"
	"github.com/harentsoaR/doctors-portal/internal/repository"
	"github.com/harentsoaR/doctors-portal/internal/services"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

// Handler carries everything the HTTP handlers need. Each route is a method.
type Handler struct {
	Services        *repository.ServiceRepository
	Bookings        *repository.BookingRepository
	Users           *repository.UserRepository
	Doctors         *repository.DoctorRepository
	Availability    *availability.Engine
	Admission       *booking.Admitter
	Tokens          *auth.TokenManager
	NotificationSvc *services.NotificationService
	Logger          *zap.Logger
}

type Dependencies struct {
	Services        *repository.ServiceRepository
	Bookings        *repository.BookingRepository
	Users           *repository.UserRepository
	Doctors         *repository.DoctorRepository
	Tokens          *auth.TokenManager
	NotificationSvc *services.NotificationService
	Logger          *zap.Logger
}

// NewHandler builds the availability engine and booking admitter on top of
// the given repositories.
func NewHandler(d Dependencies) *Handler {
	return &Handler{
		Services:        d.Services,
		Bookings:        d.Bookings,
		Users:           d.Users,
		Doctors:         d.Doctors,
		Availability:    availability.NewEngine(d.Services, d.Bookings),
		Admission:       booking.NewAdmitter(d.Bookings, d.Logger),
		Tokens:          d.Tokens,
		NotificationSvc: d.NotificationSvc,
		Logger:          d.Logger,
	}
}

func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Doctors Portal API is running")
}

// storeError writes the response for a failed store call. notFound is the
// message used when the record was required and is missing.
func (h *Handler) storeError(c *gin.Context, op string, err error, notFound string) {
	switch {
	case errors.Is(err, store.ErrNotFound) && notFound != "":
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		h.Logger.Error(op+" failed",
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	}
}
