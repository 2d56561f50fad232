package router

import (
	"church_backend/internal/handlers"
	"church_backend/internal/middleware"
	"church_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up the user routes.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RequireStatus(models.StatusChurchPastor))
	{
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.GET("/:id", userHandler.GetUserByID)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}
}

// SetupMemberRoutes sets up the member routes.
func SetupMemberRoutes(authenticatedGroup *gin.RouterGroup, memberHandler *handlers.MemberHandler) {
	memberRoutes := authenticatedGroup.Group("/members")
	memberRoutes.Use(middleware.RequireStatus(models.StatusChurchAdmin))
	{
		memberRoutes.POST("", memberHandler.CreateMember)
		memberRoutes.GET("", memberHandler.GetMembers)
		memberRoutes.GET("/:id", memberHandler.GetMemberByID)
		memberRoutes.PUT("/:id", memberHandler.UpdateMember)
		memberRoutes.DELETE("/:id", memberHandler.DeleteMember)
	}
}

// SetupGroupRoutes sets up the group routes. Groups are managed by managers only.
func SetupGroupRoutes(authenticatedGroup *gin.RouterGroup, groupHandler *handlers.GroupHandler) {
	groupRoutes := authenticatedGroup.Group("/groups")
	groupRoutes.Use(middleware.RequireStatus(models.StatusManager))
	{
		groupRoutes.POST("", groupHandler.CreateGroup)
		groupRoutes.GET("", groupHandler.GetGroups)
		groupRoutes.GET("/:id", groupHandler.GetGroupByID)
		groupRoutes.PUT("/:id", groupHandler.UpdateGroup)
		groupRoutes.DELETE("/:id", groupHandler.DeleteGroup)
	}
}

// SetupChurchRoutes sets up the church routes.
func SetupChurchRoutes(authenticatedGroup *gin.RouterGroup, churchHandler *handlers.ChurchHandler) {
	churchRoutes := authenticatedGroup.Group("/churches")
	churchRoutes.Use(middleware.RequireStatus(models.StatusGroupAdmin))
	{
		churchRoutes.POST("", churchHandler.CreateChurch)
		churchRoutes.GET("", churchHandler.GetChurches)
		churchRoutes.GET("/:id", churchHandler.GetChurchByID)
		churchRoutes.PUT("/:id", churchHandler.UpdateChurch)
		churchRoutes.DELETE("/:id", churchHandler.DeleteChurch)
	}
}

// SetupAttendanceRoutes sets up the attendance routes.
func SetupAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	attendanceRoutes := authenticatedGroup.Group("/attendance")
	attendanceRoutes.Use(middleware.RequireStatus(models.StatusChurchAdmin))
	{
		attendanceRoutes.POST("", attendanceHandler.CreateAttendance)
		attendanceRoutes.GET("", attendanceHandler.GetAttendance)
		attendanceRoutes.PUT("/:id", attendanceHandler.UpdateAttendance)
		attendanceRoutes.DELETE("/:id", attendanceHandler.DeleteAttendance)
	}
}

// SetupSpecialServiceRoutes sets up the GCK, Home Caring Fellowship and Seminar routes.
func SetupSpecialServiceRoutes(authenticatedGroup *gin.RouterGroup, specialHandler *handlers.SpecialServiceHandler) {
	specialRoutes := authenticatedGroup.Group("/specialService")
	specialRoutes.Use(middleware.RequireStatus(models.StatusChurchAdmin))
	{
		specialRoutes.POST("", specialHandler.CreateSpecialService)
		specialRoutes.GET("", specialHandler.GetSpecialServices)
		specialRoutes.PUT("/:id", specialHandler.UpdateSpecialService)
		specialRoutes.DELETE("/:id", specialHandler.DeleteSpecialService)
	}
}

// SetupMessageRoutes sets up the bulk SMS route.
func SetupMessageRoutes(authenticatedGroup *gin.RouterGroup, messageHandler *handlers.MessageHandler) {
	messageRoutes := authenticatedGroup.Group("/messages")
	messageRoutes.Use(middleware.RequireStatus(models.StatusChurchAdmin))
	{
		messageRoutes.POST("", messageHandler.SendMessages)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RequireStatus(models.StatusChurchAdmin))
	{
		reportRoutes.GET("/monthly", reportHandler.GetMonthlyReport)
		reportRoutes.GET("/general", reportHandler.GetGeneralReport)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RequireStatus(models.StatusChurchAdmin))
	{
		dashboardRoutes.GET("", dashboardHandler.GetDashboardStats)
	}
}
