package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MontaQLabs/PolkArena-sub001/internal/services"
)

type AuthHandler struct {
	identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type GuestTokenRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
}

type GuestTokenResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

// GuestToken godoc
// @Summary      Mint a guest identity token
// @Description  Issues a signed token for an anonymous player so they can join rooms
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body GuestTokenRequest true "Display name"
// @Success      200 {object} GuestTokenResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/auth/guest [post]
func (h *AuthHandler) GuestToken(c *gin.Context) {
	var req GuestTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID := uuid.NewString()
	token, err := h.identity.IssueToken(userID, req.DisplayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, GuestTokenResponse{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Token:       token,
	})
}
