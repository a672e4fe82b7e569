package controllers

import (
	"log/slog"
	"net/http"

	"github.com/cityreport/api-go/screens"
	"github.com/gin-gonic/gin"
)

type ScreenController struct {
	Logger *slog.Logger
}

func NewScreenController(logger *slog.Logger) *ScreenController {
	return &ScreenController{Logger: logger}
}

// ResolveScreen tells the client which screen renders a path. Unknown
// paths resolve to Not Found with status 200.
func (sc *ScreenController) ResolveScreen(c *gin.Context) {
	path := c.Param("path")
	res := screens.Resolve(path)
	if !res.Found {
		sc.Logger.Warn("user attempted to access non-existent route", "path", path)
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: res})
}

// NotFound handles requests no route matches.
func (sc *ScreenController) NotFound(c *gin.Context) {
	path := c.Request.URL.Path
	sc.Logger.Warn("user attempted to access non-existent route", "path", path, "method", c.Request.Method)
	c.JSON(http.StatusNotFound, StandardResponse{
		Success: false,
		Message: "Not found",
		Data:    screens.NotFoundResolution(path),
	})
}
