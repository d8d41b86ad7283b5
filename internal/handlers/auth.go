package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medical-history-server/internal/auth"
	"medical-history-server/internal/middleware"
	"medical-history-server/internal/utils"
)

// AuthHandler handles token lifecycle requests. Tokens are issued by the
// user service; this service only revokes them on logout.
type AuthHandler struct {
	Revoker auth.TokenRevoker
	Log     *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(revoker auth.TokenRevoker, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Revoker: revoker, Log: logger}
}

// Logout puts the presented token on the denylist for its remaining
// lifetime. Tokens without a jti cannot be revoked individually.
func (h *AuthHandler) Logout(c *gin.Context) {
	verified, ok := middleware.GetVerifiedToken(c)
	if !ok {
		utils.Unauthorized(c, "User information not found in token")
		return
	}
	if verified.TokenID == "" {
		utils.BadRequest(c, "Token carries no id and cannot be revoked")
		return
	}

	ttl := time.Until(verified.ExpiresAt)
	if err := h.Revoker.Revoke(c.Request.Context(), verified.TokenID, ttl); err != nil {
		h.Log.Error("failed to revoke token",
			zap.String("tokenId", verified.TokenID),
			zap.Error(err),
		)
		utils.InternalServerError(c, "Failed to revoke token")
		return
	}
	utils.Success(c, "Logged out successfully", nil)
}
