package main

import (
	"log"
	"net/http"
	"time"
	"tms/src/common"
	"tms/src/config"
	"tms/src/db"
	"tms/src/middlewares"
	"tms/src/models"
	"tms/src/types"
	"tms/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			startDate, err := time.Parse(config.DATE_PARSE_FORMAT, body.StartDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
				return
			}
			req := &common.BookingRequest{
				PackageID:     uuid.MustParse(body.PackageID),
				UserID:        userID,
				StartDate:     startDate,
				NumPeople:     body.NumPeople,
				PaymentMethod: types.PaymentMethod(body.PaymentMethod),
			}
			booking, err := common.CreateBooking(ctx, db.GetDb(), req, time.Now())
			if err != nil {
				respondError(ctx, err)
				return
			}
			go utils.SendBookingConfirmation(booking, booking.Package, ctx.GetString("email"))
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			userID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			gdb := db.GetDb()
			var bookings []models.Booking
			tx := gdb.Model(&models.Booking{}).Order("created_at desc").Limit(100)
			if types.UserRole(ctx.GetString("role")) == types.ROLE_HOST {
				tx = tx.
					Joins("JOIN packages ON packages.id = bookings.package_id").
					Where("packages.host_id = ?", userID).
					Preload("User")
			} else {
				tx = tx.Where("user_id = ?", userID)
			}
			if err := tx.
				Preload("Package").
				Preload("Transaction").
				Find(&bookings).
				Error; err != nil {
				log.Printf("Error retrieving bookings: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			gdb := db.GetDb()
			var booking models.Booking
			if err := gdb.
				Model(&models.Booking{}).
				Where("id = ?", params.ID).
				Preload("Package").
				Preload("Transaction").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			isOwner := booking.UserID == userID
			isHost := booking.Package != nil && booking.Package.HostID == userID
			isAdmin := types.UserRole(ctx.GetString("role")) == types.ROLE_ADMIN
			if !isOwner && !isHost && !isAdmin {
				ctx.AbortWithStatus(http.StatusForbidden)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			if err := common.CancelBooking(ctx, db.GetDb(), uuid.MustParse(params.ID), userID); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
