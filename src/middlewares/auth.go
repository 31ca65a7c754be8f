package middlewares

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"tms/src/db"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/types"
	"tms/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AuthMiddleware verifies the bearer token, rejects revoked sessions and
// loads the profile into the request context. Everything downstream reads the
// session from context, never from globals.
func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	reqToken := strings.TrimPrefix(bearerToken, "Bearer ")
	if reqToken == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return utils.JWTKey(), nil
	})
	if err != nil || !tkn.Valid {
		if err != nil {
			log.Printf("token error: %s\n", err.Error())
		}
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if rd := lib.GetRedisClient(); rd != nil {
		revoked, err := rd.Exists(ctx, fmt.Sprintf("denylist:%s", reqToken)).Result()
		if err == nil && revoked > 0 {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	db := db.GetDb()
	var profile models.Profile
	if err := db.
		Model(&models.Profile{}).
		Where("id = ?", uid).
		First(&profile).
		Error; err != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx.Set("id", profile.ID.String())
	ctx.Set("email", profile.Email)
	ctx.Set("role", string(profile.Role))
	ctx.Set("token", reqToken)
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...types.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		current := types.UserRole(ctx.GetString("role"))
		for _, role := range roles {
			if current == role {
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// SessionUserID returns the authenticated profile id from context.
func SessionUserID(ctx *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(ctx.GetString("id"))
}
