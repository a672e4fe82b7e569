package routes

import (
	"github.com/cityreport/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupScreenRoutes(public *gin.RouterGroup, screenController *controllers.ScreenController) {
	public.GET("/screens/*path", screenController.ResolveScreen)
}
