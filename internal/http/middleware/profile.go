package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/contracts-service/internal/auth"
	"github.com/nurpe/contracts-service/internal/model"
)

const profileKey = "profile"

// Profile resolves the caller and attaches the profile to the gin context.
func Profile(resolver auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := resolver.Resolve(c.Request.Context(), c.Request)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingIdentity):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, auth.ErrUnknownIdentity):
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, auth.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			default:
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.Set(profileKey, *profile)
		c.Next()
	}
}

func MustProfile(c *gin.Context) (model.Profile, bool) {
	value, ok := c.Get(profileKey)
	if !ok {
		return model.Profile{}, false
	}
	profile, ok := value.(model.Profile)
	return profile, ok
}
