package routes

import (
	"github.com/cityreport/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	report := protected.Group("/report")
	{
		report.POST("", reportController.StartReport)
		report.GET("/:id", reportController.GetReport)
		report.DELETE("/:id", reportController.DiscardReport)
		report.POST("/:id/photo", reportController.AttachPhoto)
		report.PUT("/:id/details", reportController.UpdateDetails)
		report.PUT("/:id/location", reportController.UpdateLocation)
		report.POST("/:id/next", reportController.NextStep)
		report.POST("/:id/back", reportController.PreviousStep)
		report.POST("/:id/submit", reportController.SubmitReport)
	}
}

func SetupReportsRoutes(protected *gin.RouterGroup, reportsController *controllers.ReportsController) {
	reports := protected.Group("/reports")
	{
		reports.GET("", reportsController.ListReports)
		reports.GET("/:id", reportsController.GetReport)
	}
}
