package middleware

import (
	"net/http"
	"strings"

	"github.com/cityreport/api-go/auth"
	"github.com/cityreport/api-go/screens"
	"github.com/cityreport/api-go/utils"
	"github.com/gin-gonic/gin"
)

// ChallengeHeader carries the token returned by login to the OTP screen.
const ChallengeHeader = "X-Challenge-Token"

const challengeContextKey = "challenge"

// AuthMiddleware requires a session token issued after OTP verification.
func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
			unauthorized(c, "Invalid token format")
			return
		}

		userClaims, err := tokens.ParseSession(bearerToken[1])
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}

		c.Set(string(utils.UserContextKey), userClaims)

		c.Next()
	}
}

// ChallengeMiddleware requires the challenge token of a pending OTP
// verification. Without one the client is sent back to login.
func ChallengeMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ChallengeHeader)
		if raw == "" {
			awaitingPhone(c, "Challenge token is required")
			return
		}

		claims, err := tokens.ParseChallenge(raw)
		if err != nil {
			awaitingPhone(c, "Invalid challenge token")
			return
		}

		c.Set(challengeContextKey, claims)

		c.Next()
	}
}

// GetChallenge returns the claims stored by ChallengeMiddleware.
func GetChallenge(c *gin.Context) (auth.ChallengeClaims, bool) {
	v, ok := c.Get(challengeContextKey)
	if !ok {
		return auth.ChallengeClaims{}, false
	}
	claims, ok := v.(auth.ChallengeClaims)
	return claims, ok
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    msg,
		"success":  false,
		"navigate": screens.PathLogin,
	})
}

// awaitingPhone rejects an OTP request that carries no usable challenge. The
// OTP screen is back at its first state and the client returns to login.
func awaitingPhone(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    msg,
		"success":  false,
		"data":     gin.H{"state": auth.StateAwaitingPhone},
		"navigate": screens.PathLogin,
	})
}
