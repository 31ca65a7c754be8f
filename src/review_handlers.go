package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"tms/src/db"
	"tms/src/middlewares"
	"tms/src/models"
	"tms/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func reviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reviews", func(ctx *gin.Context) {
			var body types.CreateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			gdb := db.GetDb()
			var review models.Review
			err = gdb.Transaction(func(tx *gorm.DB) error {
				var booking models.Booking
				if err := tx.
					Where("id = ? AND user_id = ?", body.BookingID, userID).
					Preload("Package").
					First(&booking).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: booking not found", types.ErrInvalidInput)
					}
					return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
				}
				if booking.Status != types.BOOKING_COMPLETED {
					return fmt.Errorf("%w: only completed trips can be reviewed", types.ErrConflict)
				}
				review = models.Review{
					BookingID:  booking.ID,
					PackageID:  booking.PackageID,
					ReviewerID: userID,
					RevieweeID: booking.Package.HostID,
					Rating:     body.Rating,
				}
				if body.Comment != "" {
					review.Comment = &body.Comment
				}
				if err := tx.Create(&review).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return fmt.Errorf("%w: booking already reviewed", types.ErrConflict)
					}
					return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
				}
				return nil
			})
			if err != nil {
				log.Printf("Error creating review: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": review.ID})
		})
	return g
}
