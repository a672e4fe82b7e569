package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cityreport/api-go/auth"
	"github.com/cityreport/api-go/config"
	"github.com/cityreport/api-go/controllers"
	"github.com/cityreport/api-go/middleware"
	"github.com/cityreport/api-go/reports"
	"github.com/cityreport/api-go/routes"
	"github.com/cityreport/api-go/storage"
	"github.com/cityreport/api-go/wizard"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// loadConfig reads the file named by --config, if any, plus the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openRepository picks postgres when a database URL is configured and the
// built-in sample reports otherwise.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (reports.Repository, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("using in-memory sample reports")
		return reports.NewMemoryRepository(reports.SampleReports()), nil
	}

	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	repo := reports.NewGormRepository(db)
	seeded, err := repo.Seed(ctx, reports.SampleReports())
	if err != nil {
		return nil, err
	}
	logger.Info("connected to report database", "seeded", seeded)
	return repo, nil
}

// newRouter wires every controller onto a gin engine.
func newRouter(cfg *config.Config, repo reports.Repository, photos storage.PhotoStore, logger *slog.Logger) *gin.Engine {
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL, cfg.ChallengeTTL)
	otp := auth.NewOTPService(auth.OTPOptions{
		AcceptedCode:   cfg.DemoOTP,
		SendDelay:      cfg.OTPSendDelay,
		VerifyDelay:    cfg.OTPVerifyDelay,
		ResendCooldown: cfg.ResendCooldown,
		TTL:            cfg.ChallengeTTL,
	})
	drafts := wizard.NewService(wizard.NewStore(cfg.DraftTTL), photos, cfg.SubmitDelay, logger)
	report := controllers.NewReportController(drafts, logger)
	report.MaxPhotoBytes = cfg.MaxPhotoBytes

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	routes.SetupRoutes(r, tokens, routes.Controllers{
		Auth:      controllers.NewAuthController(otp, tokens, logger),
		Report:    report,
		Reports:   controllers.NewReportsController(repo, logger),
		Dashboard: controllers.NewDashboardController(repo, logger),
		Screen:    controllers.NewScreenController(logger),
	})
	return r
}
