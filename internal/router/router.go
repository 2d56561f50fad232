package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"church_backend/internal/config"
	"church_backend/internal/handlers"
	"church_backend/internal/middleware"
	"church_backend/internal/models"
	"church_backend/internal/repositories"
	"church_backend/internal/services"
	"church_backend/internal/sms"
	"church_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// App exposes the wired services that outlive a single request.
type App struct {
	Messages services.MessageService
}

// RegisterValidators installs the custom and enum binding tags used by the request DTOs.
func RegisterValidators() error {
	if err := utils.InitValidators(); err != nil {
		return err
	}
	enums := []struct {
		tag    string
		values []string
	}{
		{"status", []string{
			string(models.StatusChurchAdmin), string(models.StatusChurchPastor),
			string(models.StatusGroupAdmin), string(models.StatusGroupPastor), string(models.StatusManager),
		}},
		{"target", []string{services.TargetGroup, services.TargetChurch}},
		{"category", []string{
			string(models.SpecialGCK), string(models.SpecialHomeCaringFellowship), string(models.SpecialSeminar),
		}},
		{"recipientcategory", services.RecipientCategories()},
		{"gender", []string{models.GenderMale, models.GenderFemale}},
		{"membercategory", []string{models.CategoryAdult, models.CategoryYouth, models.CategoryChildren}},
		{"memberstatus", []string{models.MemberStatusWorker, models.MemberStatusNonWorker}},
	}
	for _, e := range enums {
		if err := utils.RegisterEnumValidation(e.tag, e.values...); err != nil {
			return fmt.Errorf("registering %s validation: %w", e.tag, err)
		}
	}
	return nil
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config) (*App, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	churchRepo := repositories.NewChurchRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	specialRepo := repositories.NewSpecialServiceRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)

	tokens := utils.NewTokenManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	sender := sms.NewSender(cfg.SMS)

	// Initialize Services
	authService := services.NewAuthService(userRepo, memberRepo, resetRepo, tokens, sender)
	userService := services.NewUserService(userRepo, memberRepo)
	memberService := services.NewMemberService(memberRepo, churchRepo)
	groupService := services.NewGroupService(groupRepo)
	churchService := services.NewChurchService(churchRepo, groupRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, churchRepo)
	specialService := services.NewSpecialServiceService(specialRepo, churchRepo)
	messageService := services.NewMessageService(memberRepo, churchRepo, sender)
	reportService := services.NewReportService(
		services.NewRecordStore(attendanceRepo, specialRepo),
		services.NewIdentityResolver(groupRepo, churchRepo),
	)
	dashboardService := services.NewDashboardService(
		services.NewDashboardStore(groupRepo, churchRepo, userRepo, memberRepo, attendanceRepo),
	)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens.RefreshTTL(), cfg.Server.GinMode == gin.ReleaseMode)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewMemberHandler(memberService)
	groupHandler := handlers.NewGroupHandler(groupService)
	churchHandler := handlers.NewChurchHandler(churchService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	specialHandler := handlers.NewSpecialServiceHandler(specialService)
	messageHandler := handlers.NewMessageHandler(messageService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	apiV2 := engine.Group("/api/v2")

	SetupPublicAuthRoutes(apiV2.Group("/auth"), authHandler)

	authenticated := apiV2.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		SetupUserRoutes(authenticated, userHandler)
		SetupMemberRoutes(authenticated, memberHandler)
		SetupGroupRoutes(authenticated, groupHandler)
		SetupChurchRoutes(authenticated, churchHandler)
		SetupAttendanceRoutes(authenticated, attendanceHandler)
		SetupSpecialServiceRoutes(authenticated, specialHandler)
		SetupMessageRoutes(authenticated, messageHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
	}

	return &App{Messages: messageService}, nil
}

// SetupPublicAuthRoutes registers the routes reachable without an access token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
	group.POST("/refresh", authHandler.RefreshToken)
	group.POST("/logout", authHandler.LogoutUser)

	reset := group.Group("/password-reset")
	reset.POST("/request", authHandler.RequestPasswordReset)
	reset.POST("/verify", authHandler.VerifyResetCode)
	reset.POST("/confirm", authHandler.ConfirmPasswordReset)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}
