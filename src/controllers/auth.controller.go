package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
	"tms/src/db"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/types"
	"tms/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// AuthRegister creates an auth identity plus its profile record and signs the
// new user in. Role is restricted to traveler/host; admins come from the
// provisioning path only.
func AuthRegister(ctx *gin.Context) (token *string, status int, err error) {
	var body types.RegisterRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	role := types.ROLE_TRAVELER
	if body.Role != "" {
		role = types.UserRole(body.Role)
	}
	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		log.Printf("Error hashing password: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not register user")
	}
	profile := models.Profile{
		Email:        body.Email,
		PasswordHash: hash,
		FullName:     body.FullName,
		Role:         role,
	}
	gdb := db.GetDb()
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, http.StatusConflict, errors.New("email already registered")
		}
		log.Printf("Error creating profile: %s\n", err.Error())
		return nil, http.StatusBadRequest, errors.New("could not register user")
	}
	jwt, err := utils.GenerateJWT(profile.Email, profile.ID, profile.Role)
	if err != nil {
		log.Printf("Error generating JWT token: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not register user")
	}
	return &jwt, http.StatusCreated, nil
}

// AuthLogin verifies credentials and issues a session token. Every failure
// surfaces the same generic message, never which field was wrong.
func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	gdb := db.GetDb()
	var profile models.Profile
	if err := gdb.
		Model(&models.Profile{}).
		Where("email = ?", body.Email).
		First(&profile).
		Error; err != nil {
		log.Printf("Login failed for %s: %s\n", body.Email, err.Error())
		return nil, http.StatusUnauthorized, types.ErrAuth
	}
	if !utils.CheckPassword(profile.PasswordHash, body.Password) {
		return nil, http.StatusUnauthorized, types.ErrAuth
	}
	jwt, err := utils.GenerateJWT(profile.Email, profile.ID, profile.Role)
	if err != nil {
		log.Printf("Error generating JWT token: %s\n", err.Error())
		return nil, http.StatusInternalServerError, types.ErrAuth
	}
	return &jwt, http.StatusOK, nil
}

// AuthLogout revokes the current token by putting it on the redis denylist
// until its natural expiry.
func AuthLogout(ctx *gin.Context) (status int, err error) {
	token := ctx.GetString("token")
	if token == "" {
		return http.StatusUnauthorized, types.ErrAuth
	}
	rd := lib.GetRedisClient()
	if rd == nil {
		return http.StatusNoContent, nil
	}
	claims := &types.Claims{}
	ttl := 24 * time.Hour
	if _, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return utils.JWTKey(), nil
	}); err == nil && claims.ExpiresAt != nil {
		if until := time.Until(claims.ExpiresAt.Time); until > 0 {
			ttl = until
		}
	}
	if err := rd.Set(ctx, fmt.Sprintf("denylist:%s", token), "1", ttl).Err(); err != nil {
		log.Printf("[redis] Error revoking token: %s\n", err.Error())
	}
	return http.StatusNoContent, nil
}
