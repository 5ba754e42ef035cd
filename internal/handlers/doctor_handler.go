package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.Doctors.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "list doctors", err, "")
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) AddDoctor(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Specialty string `json:"specialty" binding:"required"`
		Img       string `json:"img"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor := models.Doctor{
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		Img:       req.Img,
	}
	if err := h.Doctors.Insert(c.Request.Context(), &doctor); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A doctor with this email already exists"})
			return
		}
		h.storeError(c, "add doctor", err, "")
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	if err := h.Doctors.DeleteByEmail(c.Request.Context(), c.Param("email")); err != nil {
		h.storeError(c, "delete doctor", err, "Doctor not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}
