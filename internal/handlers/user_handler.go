package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/middleware"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "list users", err, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpsertUser records the user signed in through the front end and hands back
// an access token for them. Only the name can be set here; a role in the body
// is ignored. A first-time user needs no credential; an existing user must
// present a token for the same email.
func (h *Handler) UpsertUser(c *gin.Context) {
	email := c.Param("email")

	_, err := h.Users.FindByEmail(c.Request.Context(), email)
	switch {
	case err == nil:
		id, err := h.Tokens.VerifyHeader(c.Request.Context(), c.GetHeader("Authorization"))
		if err == nil {
			err = auth.RequireOwner(id.Email, email)
		}
		if err != nil {
			middleware.AbortWithAuthError(c, err)
			return
		}
	case !errors.Is(err, store.ErrNotFound):
		h.storeError(c, "find user", err, "")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	result, err := h.Users.Upsert(c.Request.Context(), email, req.Name)
	if err != nil {
		h.storeError(c, "upsert user", err, "")
		return
	}

	token, err := h.Tokens.Issue(email)
	if err != nil {
		h.Logger.Error("issue token failed", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "token": token})
}

// CheckAdmin reports whether email holds the admin role. Unknown users are
// simply not admins.
func (h *Handler) CheckAdmin(c *gin.Context) {
	user, err := h.Users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.storeError(c, "find user", err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": user.IsAdmin()})
}

func (h *Handler) MakeAdmin(c *gin.Context) {
	result, err := h.Users.MakeAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.storeError(c, "make admin", err, "User not found")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout revokes the token the request was made with.
func (h *Handler) Logout(c *gin.Context) {
	id, _ := middleware.Identity(c)
	if err := h.Tokens.Revoke(c.Request.Context(), id); err != nil {
		h.storeError(c, "revoke token", err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
