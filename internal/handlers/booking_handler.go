package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/booking"
	"github.com/harentsoaR/doctors-portal/internal/middleware"
	"github.com/harentsoaR/doctors-portal/internal/models"
)

func (h *Handler) ListServices(c *gin.Context) {
	list, err := h.Services.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "list services", err, "")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAvailable returns every service with the slots still open on ?date=.
func (h *Handler) GetAvailable(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	list, err := h.Availability.ForDate(c.Request.Context(), date)
	if err != nil {
		h.storeError(c, "compute availability", err, "")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBookings lists the bookings of ?patient=, which must be the caller.
func (h *Handler) GetBookings(c *gin.Context) {
	id, _ := middleware.Identity(c)
	patient := c.Query("patient")
	if err := auth.RequireOwner(id.Email, patient); err != nil {
		middleware.AbortWithAuthError(c, err)
		return
	}

	list, err := h.Bookings.ListByPatient(c.Request.Context(), patient)
	if err != nil {
		h.storeError(c, "list bookings", err, "")
		return
	}
	c.JSON(http.StatusOK, list)
}

type createBookingRequest struct {
	TreatmentID string `json:"treatmentId"`
	Treatment   string `json:"treatment"`
	Date        string `json:"date"`
	Slot        string `json:"slot"`
	Patient     string `json:"patient"`
	Email       string `json:"email"`
	PatientName string `json:"patientName"`
	Phone       string `json:"phone"`
}

// CreateBooking admits a booking for the caller. "email" is accepted in
// place of "patient". A second booking for the
// same treatment and date is not an error: the response carries
// success=false and the booking already on record.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Patient == "" {
		req.Patient = req.Email
	}

	id, _ := middleware.Identity(c)
	if err := auth.RequireOwner(id.Email, req.Patient); err != nil {
		middleware.AbortWithAuthError(c, err)
		return
	}

	res, err := h.Admission.Admit(c.Request.Context(), models.Booking{
		TreatmentID: req.TreatmentID,
		Treatment:   req.Treatment,
		Date:        req.Date,
		Slot:        req.Slot,
		Patient:     req.Patient,
		PatientName: req.PatientName,
		Phone:       req.Phone,
	})
	if err != nil {
		if errors.Is(err, booking.ErrInvalidBooking) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.storeError(c, "admit booking", err, "")
		return
	}

	if !res.Accepted {
		c.JSON(http.StatusOK, gin.H{"success": false, "booking": res.Booking})
		return
	}

	h.NotificationSvc.SendBookingConfirmationSMS(res.Booking)
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": res.Booking})
}
