package middlewares

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/market-notifier/internal/api/respond"
)

const (
	// UserIDHeader carries the id of the user authenticated upstream.
	UserIDHeader = "X-User-ID"

	userIDKey = "userID"
)

// RequireUser rejects requests without a valid user id header and stores the id in the context.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader(UserIDHeader), 10, 64)
		if err != nil || id <= 0 {
			respond.Fail(c.Writer, http.StatusUnauthorized, errors.New("missing or invalid user id"))
			c.Abort()
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID returns the id stored by RequireUser, or 0.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
