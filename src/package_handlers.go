package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
	"tms/src/common"
	"tms/src/db"
	"tms/src/lib"
	"tms/src/middlewares"
	"tms/src/models"
	"tms/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const searchCacheTTL = 60 * time.Second

func publicPackageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/packages", func(ctx *gin.Context) {
			var query types.PackageSearchQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			unfiltered := query.Q == "" && query.Tag == "" && query.PriceMin == nil && query.PriceMax == nil
			rd := lib.GetRedisClient()
			if unfiltered && rd != nil {
				cached, err := rd.Get(ctx, common.SearchCacheKey).Result()
				if err == nil {
					var packages []models.Package
					if err := json.Unmarshal([]byte(cached), &packages); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"data": packages, "count": len(packages)})
						return
					}
				} else if !errors.Is(err, redis.Nil) {
					log.Printf("[redis] Error reading search cache: %s\n", err.Error())
				}
			}
			gdb := db.GetDb()
			tx := gdb.
				Model(&models.Package{}).
				Where("status = ?", types.PACKAGE_PUBLISHED).
				Order("created_at desc").
				Limit(query.Limit)
			if query.Q != "" {
				q := "%" + query.Q + "%"
				tx = tx.Where("title ILIKE ? OR short_description ILIKE ?", q, q)
			}
			if query.Tag != "" {
				b, _ := json.Marshal([]string{query.Tag})
				tx = tx.Where("tags @> ?", string(b))
			}
			if query.PriceMin != nil {
				tx = tx.Where("price_per_person >= ?", *query.PriceMin)
			}
			if query.PriceMax != nil {
				tx = tx.Where("price_per_person <= ?", *query.PriceMax)
			}
			var packages []models.Package
			if err := tx.Find(&packages).Error; err != nil {
				log.Printf("Error searching packages: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			if unfiltered && rd != nil {
				if b, err := json.Marshal(packages); err == nil {
					if err := rd.Set(context.Background(), common.SearchCacheKey, string(b), searchCacheTTL).Err(); err != nil {
						log.Printf("[redis] Error writing search cache: %s\n", err.Error())
					}
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": packages, "count": len(packages)})
		}).
		GET("/packages/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			var pkg models.Package
			if err := gdb.
				Model(&models.Package{}).
				Where("id = ? AND status = ?", params.ID, types.PACKAGE_PUBLISHED).
				Preload("Host").
				First(&pkg).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pkg})
		}).
		GET("/packages/:id/reviews", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			var reviews []models.Review
			if err := gdb.
				Model(&models.Review{}).
				Where("package_id = ?", params.ID).
				Preload("Reviewer").
				Order("created_at desc").
				Limit(100).
				Find(&reviews).
				Error; err != nil {
				log.Printf("Error retrieving reviews: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
		})
	return g
}

func hostPackageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/host/packages", func(ctx *gin.Context) {
			hostID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			gdb := db.GetDb()
			var packages []models.Package
			if err := gdb.
				Model(&models.Package{}).
				Where("host_id = ?", hostID).
				Order("created_at desc").
				Find(&packages).
				Error; err != nil {
				log.Printf("Error retrieving host packages: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": packages, "count": len(packages)})
		}).
		POST("/packages", func(ctx *gin.Context) {
			var body types.CreatePackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			hostID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			pkg, err := common.CreatePackage(ctx, db.GetDb(), hostID, &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": pkg.ID, "slug": pkg.Slug})
		}).
		PUT("/packages/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreatePackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			hostID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			pkg, err := common.UpdatePackage(ctx, db.GetDb(), uuid.MustParse(params.ID), hostID, &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pkg})
		}).
		PUT("/packages/:id/submit", func(ctx *gin.Context) {
			transitionOwnPackage(ctx, types.PACKAGE_PENDING_APPROVAL)
		}).
		DELETE("/packages/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			hostID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			gdb := db.GetDb()
			res := gdb.
				Where("id = ? AND host_id = ?", params.ID, hostID).
				Delete(&models.Package{})
			if res.Error != nil {
				log.Printf("Error deleting package: %s\n", res.Error.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
				return
			}
			common.InvalidateSearchCache(ctx)
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func adminPackageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/packages", func(ctx *gin.Context) {
			gdb := db.GetDb()
			var packages []models.Package
			if err := gdb.
				Model(&models.Package{}).
				Where("status = ?", types.PACKAGE_PENDING_APPROVAL).
				Preload("Host").
				Order("created_at asc").
				Find(&packages).
				Error; err != nil {
				log.Printf("Error retrieving pending packages: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": packages, "count": len(packages)})
		}).
		PUT("/packages/:id/approve", func(ctx *gin.Context) {
			transitionPackage(ctx, types.PACKAGE_PUBLISHED)
		}).
		PUT("/packages/:id/archive", func(ctx *gin.Context) {
			transitionPackage(ctx, types.PACKAGE_ARCHIVED)
		})
	return g
}

func transitionPackage(ctx *gin.Context, next types.PackageStatus) {
	var params types.UUIDRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := common.TransitionPackageStatus(ctx, db.GetDb(), uuid.MustParse(params.ID), next); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func transitionOwnPackage(ctx *gin.Context, next types.PackageStatus) {
	var params types.UUIDRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hostID, err := middlewares.SessionUserID(ctx)
	if err != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	gdb := db.GetDb()
	var pkg models.Package
	if err := gdb.
		Where("id = ? AND host_id = ?", params.ID, hostID).
		First(&pkg).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
		return
	}
	if err := common.TransitionPackageStatus(ctx, gdb, pkg.ID, next); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
