package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cityreport/api-go/auth"
	"github.com/cityreport/api-go/reports"
	"github.com/cityreport/api-go/screens"
	"github.com/cityreport/api-go/utils"
	"github.com/gin-gonic/gin"
)

// RecentReportCount is how many reports the dashboard lists.
const RecentReportCount = 2

type Shortcut struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type GuideCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionLabel string `json:"actionLabel"`
}

type DashboardView struct {
	MaskedPhone   string            `json:"maskedPhone"`
	RecentReports []reports.Summary `json:"recentReports"`
	Shortcuts     []Shortcut        `json:"shortcuts"`
	Guide         GuideCard         `json:"guide"`
	BottomNav     []screens.NavItem `json:"bottomNav"`
}

type DashboardController struct {
	Repo   reports.Repository
	Logger *slog.Logger
	Now    func() time.Time
}

func NewDashboardController(repo reports.Repository, logger *slog.Logger) *DashboardController {
	return &DashboardController{Repo: repo, Logger: logger, Now: time.Now}
}

func (dc *DashboardController) GetDashboard(c *gin.Context) {
	recent, err := reports.Recent(c.Request.Context(), dc.Repo, RecentReportCount)
	if err != nil {
		dc.Logger.Error("failed to load recent reports", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("Failed to load dashboard", nil, ""))
		return
	}

	view := DashboardView{
		RecentReports: reports.NewSummaries(recent, dc.Now()),
		Shortcuts: []Shortcut{
			{Label: "Start New Report", Path: screens.PathReport},
			{Label: "View All", Path: screens.PathReports},
		},
		Guide: GuideCard{
			Title:       "How to submit a report",
			Description: "Learn how to effectively report city issues and track their progress",
			ActionLabel: "Learn More",
		},
		BottomNav: screens.BottomNav(screens.PathDashboard),
	}
	if user := utils.GetUser(c); user != nil {
		view.MaskedPhone = auth.DisplayPhone(user.Phone)
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: view})
}
