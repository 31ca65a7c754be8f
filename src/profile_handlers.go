package main

import (
	"log"
	"net/http"
	"tms/src/db"
	"tms/src/middlewares"
	"tms/src/models"
	"tms/src/types"

	"github.com/gin-gonic/gin"
)

func profileHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/profile", func(ctx *gin.Context) {
			userID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			gdb := db.GetDb()
			var profile models.Profile
			if err := gdb.
				Model(&models.Profile{}).
				Where("id = ?", userID).
				First(&profile).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": profile})
		}).
		PUT("/profile", func(ctx *gin.Context) {
			var body types.UpdateProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			patch := map[string]any{}
			if body.FullName != nil {
				patch["full_name"] = *body.FullName
			}
			if body.Phone != nil {
				patch["phone"] = *body.Phone
			}
			if body.AvatarURL != nil {
				patch["avatar_url"] = *body.AvatarURL
			}
			if body.Bio != nil {
				patch["bio"] = *body.Bio
			}
			if len(patch) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
				return
			}
			gdb := db.GetDb()
			if err := gdb.
				Model(&models.Profile{}).
				Where("id = ?", userID).
				Updates(patch).
				Error; err != nil {
				log.Printf("Error updating profile: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func adminUserHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/users", func(ctx *gin.Context) {
			gdb := db.GetDb()
			var profiles []models.Profile
			if err := gdb.
				Model(&models.Profile{}).
				Order("created_at desc").
				Limit(200).
				Find(&profiles).
				Error; err != nil {
				log.Printf("Error retrieving users: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": profiles, "count": len(profiles)})
		}).
		PUT("/admin/users/:id/kyc", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			res := gdb.
				Model(&models.Profile{}).
				Where("id = ?", params.ID).
				Update("kyc_verified", true)
			if res.Error != nil {
				log.Printf("Error updating kyc flag: %s\n", res.Error.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
