package routes

import (
	"github.com/cityreport/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupOTPRoutes(otp *gin.RouterGroup, authController *controllers.AuthController) {
	otp.GET("", authController.OTPStatus)
	otp.POST("/verify", authController.VerifyOTP)
	otp.POST("/resend", authController.ResendOTP)
	otp.GET("/countdown", authController.OTPCountdown)
}
