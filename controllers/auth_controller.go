package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cityreport/api-go/auth"
	"github.com/cityreport/api-go/middleware"
	"github.com/cityreport/api-go/screens"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	OTP    *auth.OTPService
	Tokens *auth.TokenIssuer
	Logger *slog.Logger
	// Tick is the countdown stream interval.
	Tick time.Duration
}

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type VerifyOTPRequest struct {
	Code string `json:"code"`
}

type OTPScreen struct {
	MaskedPhone string              `json:"maskedPhone"`
	State       auth.ChallengeState `json:"state"`
	ResendIn    int                 `json:"resendIn"`
	CanResend   bool                `json:"canResend"`
	ClearInput  bool                `json:"clearInput,omitempty"`
}

func NewAuthController(otp *auth.OTPService, tokens *auth.TokenIssuer, logger *slog.Logger) *AuthController {
	return &AuthController{
		OTP:    otp,
		Tokens: tokens,
		Logger: logger,
		Tick:   time.Second,
	}
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error(), nil, ""))
		return
	}

	challenge, err := ac.OTP.Send(c.Request.Context(), input.PhoneNumber)
	if errors.Is(err, auth.ErrPhoneTooShort) {
		c.JSON(http.StatusBadRequest, errorBody(err.Error(),
			destructive("Invalid phone number", "Please enter a valid 10-digit phone number"), ""))
		return
	}
	if err != nil {
		ac.internalError(c, "send otp", err)
		return
	}

	token, err := ac.Tokens.IssueChallenge(challenge)
	if err != nil {
		ac.internalError(c, "issue challenge token", err)
		return
	}

	ac.Logger.Info("otp sent", "phone", challenge.Phone, "challenge_id", challenge.ID)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"challengeToken": token,
			"maskedPhone":    auth.DisplayPhone(challenge.Phone),
			"resendIn":       challenge.Resend.Remaining(challenge.CreatedAt),
		},
		Notification: notice("OTP Sent!", "Please check your phone for the verification code"),
		Navigate:     screens.PathOTP,
	})
}

// OTPStatus renders the verification screen for the current challenge.
func (ac *AuthController) OTPStatus(c *gin.Context) {
	claims, _ := middleware.GetChallenge(c)
	challenge, err := ac.OTP.Get(claims.ChallengeID)
	if err != nil {
		ac.challengeError(c, err)
		return
	}
	resendIn, _ := ac.OTP.ResendIn(challenge.ID)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: OTPScreen{
			MaskedPhone: auth.DisplayPhone(challenge.Phone),
			State:       challenge.State,
			ResendIn:    resendIn,
			CanResend:   resendIn == 0,
		},
	})
}

func (ac *AuthController) VerifyOTP(c *gin.Context) {
	claims, _ := middleware.GetChallenge(c)

	var input VerifyOTPRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error(), nil, ""))
		return
	}

	phone, err := ac.OTP.Verify(c.Request.Context(), claims.ChallengeID, input.Code)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrIncompleteCode):
		c.JSON(http.StatusBadRequest, errorBody(err.Error(),
			destructive("Incomplete OTP", "Please enter all 6 digits"), ""))
		return
	case errors.Is(err, auth.ErrInvalidCode):
		ac.Logger.Warn("otp rejected", "challenge_id", claims.ChallengeID)
		resendIn, _ := ac.OTP.ResendIn(claims.ChallengeID)
		body := errorBody(err.Error(), destructive("Invalid OTP", "Please check the code and try again"), "")
		body["data"] = OTPScreen{
			MaskedPhone: auth.DisplayPhone(claims.Phone),
			State:       auth.StateRejected,
			ResendIn:    resendIn,
			CanResend:   resendIn == 0,
			ClearInput:  true,
		}
		c.JSON(http.StatusUnauthorized, body)
		return
	case errors.Is(err, auth.ErrVerificationInFlight):
		c.JSON(http.StatusConflict, errorBody(err.Error(), nil, ""))
		return
	case errors.Is(err, auth.ErrChallengeNotFound):
		ac.challengeError(c, err)
		return
	default:
		ac.internalError(c, "verify otp", err)
		return
	}

	token, expiresAt, err := ac.Tokens.IssueSession(phone)
	if err != nil {
		ac.internalError(c, "issue session token", err)
		return
	}

	ac.Logger.Info("phone verified", "phone", phone)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"token":     token,
			"expiresAt": expiresAt,
			"state":     auth.StateVerified,
		},
		Notification: notice("Welcome!", "Phone number verified successfully"),
		Navigate:     screens.PathDashboard,
	})
}

func (ac *AuthController) ResendOTP(c *gin.Context) {
	claims, _ := middleware.GetChallenge(c)

	challenge, err := ac.OTP.Resend(claims.ChallengeID)
	if errors.Is(err, auth.ErrResendNotReady) {
		resendIn, _ := ac.OTP.ResendIn(claims.ChallengeID)
		body := errorBody(err.Error(), nil, "")
		body["data"] = gin.H{"resendIn": resendIn}
		c.JSON(http.StatusTooManyRequests, body)
		return
	}
	if err != nil {
		ac.challengeError(c, err)
		return
	}

	ac.Logger.Info("otp resent", "phone", challenge.Phone, "challenge_id", challenge.ID)

	resendIn, _ := ac.OTP.ResendIn(challenge.ID)
	c.JSON(http.StatusOK, StandardResponse{
		Success:      true,
		Data:         gin.H{"resendIn": resendIn},
		Notification: notice("OTP Resent", "A new verification code has been sent"),
	})
}

// OTPCountdown streams the resend countdown as server-sent events until it
// reaches zero or the client disconnects.
func (ac *AuthController) OTPCountdown(c *gin.Context) {
	claims, _ := middleware.GetChallenge(c)
	if _, err := ac.OTP.Get(claims.ChallengeID); err != nil {
		ac.challengeError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	err := ac.OTP.Watch(c.Request.Context(), claims.ChallengeID, ac.Tick, func(remaining int) error {
		c.SSEvent("countdown", gin.H{"resendIn": remaining})
		c.Writer.Flush()
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		ac.Logger.Debug("countdown stream ended", "challenge_id", claims.ChallengeID, "error", err)
	}
}

// Logout only confirms; tokens are stateless.
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, StandardResponse{
		Success:      true,
		Notification: notice("Logged out", "You have been successfully logged out"),
		Navigate:     screens.PathLogin,
	})
}

// challengeError sends the client back to login when its challenge is gone.
func (ac *AuthController) challengeError(c *gin.Context, err error) {
	if errors.Is(err, auth.ErrChallengeNotFound) {
		body := errorBody(err.Error(), nil, screens.PathLogin)
		body["data"] = OTPScreen{State: auth.StateAwaitingPhone}
		c.JSON(http.StatusUnauthorized, body)
		return
	}
	ac.internalError(c, "load challenge", err)
}

func (ac *AuthController) internalError(c *gin.Context, op string, err error) {
	if errors.Is(err, context.Canceled) {
		ac.Logger.Debug("client went away", "op", op)
		c.Abort()
		return
	}
	ac.Logger.Error(op+" failed", "error", err)
	c.JSON(http.StatusInternalServerError, errorBody("Internal server error", nil, ""))
}
