package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cityreport/api-go/reports"
	"github.com/cityreport/api-go/screens"
	"github.com/gin-gonic/gin"
)

// EmptyState is shown in place of the list when there are no reports.
type EmptyState struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionLabel string `json:"actionLabel"`
	Action      string `json:"action"`
}

type ReportsController struct {
	Repo   reports.Repository
	Logger *slog.Logger
	Now    func() time.Time
}

func NewReportsController(repo reports.Repository, logger *slog.Logger) *ReportsController {
	return &ReportsController{Repo: repo, Logger: logger, Now: time.Now}
}

func (rc *ReportsController) ListReports(c *gin.Context) {
	all, err := rc.Repo.List(c.Request.Context())
	if err != nil {
		rc.Logger.Error("failed to list reports", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("Failed to fetch reports", nil, ""))
		return
	}

	data := gin.H{"reports": reports.NewSummaries(all, rc.Now())}
	if len(all) == 0 {
		data["empty"] = EmptyState{
			Title:       "No reports yet",
			Description: "Start by reporting your first city issue",
			ActionLabel: "Report an Issue",
			Action:      screens.PathReport,
		}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    data,
		Meta: gin.H{
			"count":     len(all),
			"bottomNav": screens.BottomNav(screens.PathReports),
		},
	})
}

func (rc *ReportsController) GetReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid report ID", nil, ""))
		return
	}

	rep, err := rc.Repo.Get(c.Request.Context(), uint(id))
	if errors.Is(err, reports.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, errorBody(err.Error(), nil, ""))
		return
	}
	if err != nil {
		rc.Logger.Error("failed to fetch report", "report_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("Failed to fetch report", nil, ""))
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reports.NewDetail(rep, rc.Now()),
	})
}
