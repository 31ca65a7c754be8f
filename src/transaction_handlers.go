package main

import (
	"log"
	"net/http"
	"tms/src/common"
	"tms/src/db"
	"tms/src/middlewares"
	"tms/src/models"
	"tms/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func transactionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/transactions/:id", func(ctx *gin.Context) {
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
			var txn models.Transaction
			if err := gdb.
				Model(&models.Transaction{}).
				Where("id = ?", params.ID).
				Preload("Booking").
				First(&txn).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
				return
			}
			isAdmin := types.UserRole(ctx.GetString("role")) == types.ROLE_ADMIN
			if txn.Booking.UserID != userID && !isAdmin {
				ctx.AbortWithStatus(http.StatusForbidden)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		GET("/host/transactions", func(ctx *gin.Context) {
			hostID, err := middlewares.SessionUserID(ctx)
			if err != nil {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			gdb := db.GetDb()
			var txns []models.Transaction
			if err := gdb.
				Model(&models.Transaction{}).
				Joins("JOIN bookings ON bookings.id = transactions.booking_id").
				Joins("JOIN packages ON packages.id = bookings.package_id").
				Where("packages.host_id = ?", hostID).
				Order("transactions.created_at desc").
				Limit(100).
				Find(&txns).
				Error; err != nil {
				log.Printf("Error retrieving host transactions: %s\n", err.Error())
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrPersistence.Error()})
				return
			}
			var net int64
			for _, t := range txns {
				if t.Status == types.TRANSACTION_COMPLETED {
					net += t.NetAmount
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txns, "count": len(txns), "net_total": net})
		})
	return g
}

func adminTransactionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		PUT("/transactions/:id/settle", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := common.SettleTransaction(ctx, db.GetDb(), uuid.MustParse(params.ID)); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
