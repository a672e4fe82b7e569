package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cityreport/api-go/models"
	"github.com/cityreport/api-go/screens"
	"github.com/cityreport/api-go/utils"
	"github.com/cityreport/api-go/wizard"
	"github.com/gin-gonic/gin"
)

// multipartSlack is the room left in the request body for the form
// framing around the photo.
const multipartSlack = 1 << 20

// ReportController drives the four-step report wizard.
type ReportController struct {
	Wizard *wizard.Service
	Logger *slog.Logger

	// MaxPhotoBytes caps one upload. Zero leaves uploads unbounded.
	MaxPhotoBytes int64
}

type UpdateDetailsRequest struct {
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
}

type UpdateLocationRequest struct {
	Address string `json:"address"`
}

func NewReportController(svc *wizard.Service, logger *slog.Logger) *ReportController {
	return &ReportController{Wizard: svc, Logger: logger}
}

func owner(c *gin.Context) string {
	if user := utils.GetUser(c); user != nil {
		return user.Phone
	}
	return ""
}

func (rc *ReportController) StartReport(c *gin.Context) {
	view := rc.Wizard.Start(c.Request.Context(), owner(c))
	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    view,
		Meta:    gin.H{"bottomNav": screens.BottomNav(screens.PathReport)},
	})
}

func (rc *ReportController) GetReport(c *gin.Context) {
	view, err := rc.Wizard.View(c.Request.Context(), c.Param("id"), owner(c))
	rc.respond(c, view, err)
}

// AttachPhoto accepts any file in the "photo" form field up to MaxPhotoBytes.
func (rc *ReportController) AttachPhoto(c *gin.Context) {
	limit := rc.MaxPhotoBytes
	if limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartSlack)
	}

	header, err := c.FormFile("photo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rc.fail(c, wizard.ErrPhotoTooLarge)
			return
		}
		rc.fail(c, wizard.ErrNoPhoto)
		return
	}
	if limit > 0 && header.Size > limit {
		rc.fail(c, wizard.ErrPhotoTooLarge)
		return
	}
	file, err := header.Open()
	if err != nil {
		rc.fail(c, err)
		return
	}
	defer file.Close()

	var src io.Reader = file
	if limit > 0 {
		src = io.LimitReader(file, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		rc.fail(c, err)
		return
	}
	if limit > 0 && int64(len(data)) > limit {
		rc.fail(c, wizard.ErrPhotoTooLarge)
		return
	}

	view, err := rc.Wizard.AttachPhoto(c.Request.Context(), c.Param("id"), owner(c), wizard.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	rc.respond(c, view, err)
}

func (rc *ReportController) UpdateDetails(c *gin.Context) {
	var input UpdateDetailsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error(), nil, ""))
		return
	}

	view, err := rc.Wizard.UpdateDetails(c.Request.Context(), c.Param("id"), owner(c), input.Category, input.Description)
	rc.respond(c, view, err)
}

func (rc *ReportController) UpdateLocation(c *gin.Context) {
	var input UpdateLocationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error(), nil, ""))
		return
	}

	view, err := rc.Wizard.UpdateLocation(c.Request.Context(), c.Param("id"), owner(c), input.Address)
	rc.respond(c, view, err)
}

func (rc *ReportController) NextStep(c *gin.Context) {
	view, err := rc.Wizard.Next(c.Request.Context(), c.Param("id"), owner(c))
	rc.respond(c, view, err)
}

func (rc *ReportController) PreviousStep(c *gin.Context) {
	view, err := rc.Wizard.Back(c.Request.Context(), c.Param("id"), owner(c))
	rc.respond(c, view, err)
}

// SubmitReport blocks for the simulated submission and then returns to the
// dashboard. The draft is discarded.
func (rc *ReportController) SubmitReport(c *gin.Context) {
	if err := rc.Wizard.Submit(c.Request.Context(), c.Param("id"), owner(c)); err != nil {
		rc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:      true,
		Notification: notice("Report Submitted!", "We've received your complaint and will review it soon"),
		Navigate:     screens.PathDashboard,
	})
}

// DiscardReport is called when the user leaves the wizard.
func (rc *ReportController) DiscardReport(c *gin.Context) {
	if err := rc.Wizard.Discard(c.Request.Context(), c.Param("id"), owner(c)); err != nil {
		rc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:  true,
		Message:  "Draft discarded",
		Navigate: screens.PathDashboard,
	})
}

func (rc *ReportController) respond(c *gin.Context, view wizard.View, err error) {
	if err != nil {
		rc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: view})
}

func (rc *ReportController) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wizard.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, errorBody(err.Error(), nil, ""))
	case errors.Is(err, wizard.ErrMissingDetails):
		c.JSON(http.StatusBadRequest, errorBody(err.Error(),
			destructive("Missing Information", "Please fill in all required fields"), ""))
	case errors.Is(err, wizard.ErrUnknownCategory), errors.Is(err, wizard.ErrNoPhoto):
		c.JSON(http.StatusBadRequest, errorBody(err.Error(), nil, ""))
	case errors.Is(err, wizard.ErrPhotoTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, errorBody(err.Error(),
			destructive("Photo Too Large", "Please choose a smaller photo"), ""))
	case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrBackUnavailable), errors.Is(err, wizard.ErrSubmitting):
		c.JSON(http.StatusConflict, errorBody(err.Error(), nil, ""))
	case errors.Is(err, context.Canceled):
		rc.Logger.Debug("client went away", "draft_id", c.Param("id"))
		c.Abort()
	default:
		rc.Logger.Error("report wizard failed", "draft_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("Internal server error", nil, ""))
	}
}
