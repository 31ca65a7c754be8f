package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	"tms/src/boot"
	"tms/src/config"
	"tms/src/controllers"
	"tms/src/middlewares"
	"tms/src/types"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

// bookabledate accepts YYYY-MM-DD dates from today onward. The strict
// must-be-tomorrow policy lives in the booking workflow, where the clock is
// injected.
var bookableDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, datetime.Location())
	return !datetime.Before(today)
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func maintenanceModeMiddleware(router *gin.Engine) *gin.Engine {
	router.Use(func(ctx *gin.Context) {
		if os.Getenv("MAINTENANCE_MODE") == "true" && strings.HasPrefix(ctx.Request.URL.Path, apiPrefix) {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service under maintenance"})
		}
	})
	return router
}

func apiv1Group(router *gin.Engine) *gin.RouterGroup {
	g := router.Group(apiPrefix)
	g.GET("", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"name": "tms", "version": "v1"})
	})
	return g
}

func guestAuthRoutes(router *gin.Engine) {
	g := router.Group(apiPrefix + "/auth")
	g.POST("/register", func(ctx *gin.Context) {
		token, status, err := controllers.AuthRegister(ctx)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(status, gin.H{"token": *token})
	})
	g.POST("/login", func(ctx *gin.Context) {
		token, status, err := controllers.AuthLogin(ctx)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(status, gin.H{"token": *token})
	})
}

func registerAPIRoutes(apiv1 *gin.RouterGroup) {
	publicPackageHandlers(apiv1)

	authed := apiv1.Group("")
	authed.Use(middlewares.AuthMiddleware)
	bookingHandlers(authed)
	transactionHandlers(authed)
	reviewHandlers(authed)
	profileHandlers(authed)
	authed.POST("/auth/logout", func(ctx *gin.Context) {
		status, err := controllers.AuthLogout(ctx)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.Status(status)
	})
	authed.GET("/auth/session", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"id":    ctx.GetString("id"),
			"email": ctx.GetString("email"),
			"role":  ctx.GetString("role"),
		})
	})

	host := authed.Group("")
	host.Use(middlewares.RequireRole(types.ROLE_HOST, types.ROLE_ADMIN))
	hostPackageHandlers(host)

	admin := authed.Group("")
	admin.Use(middlewares.RequireRole(types.ROLE_ADMIN))
	adminPackageHandlers(admin)
	adminUserHandlers(admin)
	adminTransactionHandlers(admin)
}

func respondError(ctx *gin.Context, err error) {
	status := types.ErrorStatus(err)
	msg := err.Error()
	if errors.Is(err, types.ErrPersistence) {
		// never leak storage error text to clients
		msg = types.ErrPersistence.Error()
	}
	ctx.JSON(status, gin.H{"error": msg})
}

func main() {
	registerValidators()
	boot.InitDb()
	if err := boot.EnsureAdminAccount(); err != nil {
		log.Printf("Error provisioning admin account: %s\n", err.Error())
	}
	boot.InitScheduler()
	defer boot.StopScheduler()

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1 := apiv1Group(router)
	guestAuthRoutes(router)
	registerAPIRoutes(apiv1)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %s", err.Error())
	}
}
