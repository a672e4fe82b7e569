package routes

import (
	"github.com/cityreport/api-go/auth"
	"github.com/cityreport/api-go/controllers"
	"github.com/cityreport/api-go/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers mounted by SetupRoutes.
type Controllers struct {
	Auth      *controllers.AuthController
	Report    *controllers.ReportController
	Reports   *controllers.ReportsController
	Dashboard *controllers.DashboardController
	Screen    *controllers.ScreenController
}

func SetupRoutes(r *gin.Engine, tokens *auth.TokenIssuer, ctrl Controllers) {
	// Public routes
	public := r.Group("/api")
	{
		public.POST("/auth/login", ctrl.Auth.Login)
		SetupScreenRoutes(public, ctrl.Screen)
	}

	// OTP screen, authorized by the challenge token from login
	otp := r.Group("/api/auth/otp")
	otp.Use(middleware.ChallengeMiddleware(tokens))
	SetupOTPRoutes(otp, ctrl.Auth)

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.POST("/logout", ctrl.Auth.Logout)
		protected.GET("/dashboard", ctrl.Dashboard.GetDashboard)

		SetupReportRoutes(protected, ctrl.Report)
		SetupReportsRoutes(protected, ctrl.Reports)
	}

	r.NoRoute(ctrl.Screen.NotFound)
}
