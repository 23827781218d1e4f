package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"deviceauth/internal/application/access/usecases"
	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/shared/errors"
	"deviceauth/internal/shared/logger"
	"deviceauth/internal/shared/utils"
)

// AccessHandler exposes the device authorization protocol over HTTP. Wire
// field names follow the established client contract and must not change.
type AccessHandler struct {
	grantUseCase    grantAccessUseCase
	validateUseCase validateAccessUseCase
	refreshUseCase  refreshAccessUseCase
	revokeUseCase   revokeAccessUseCase
	logger          logger.Interface
}

func NewAccessHandler(
	grantUC grantAccessUseCase,
	validateUC validateAccessUseCase,
	refreshUC refreshAccessUseCase,
	revokeUC revokeAccessUseCase,
	logger logger.Interface,
) *AccessHandler {
	return &AccessHandler{
		grantUseCase:    grantUC,
		validateUseCase: validateUC,
		refreshUseCase:  refreshUC,
		revokeUseCase:   revokeUC,
		logger:          logger,
	}
}

type RequestAccessRequest struct {
	ClientID   string `json:"clientid" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	DeviceUUID string `json:"deviceuuid" binding:"required"`
	Platform   string `json:"platform" binding:"required,platform"`
	Type       string `json:"type" binding:"required"`
	DeviceName string `json:"devicename" binding:"required"`
	OS         string `json:"os" binding:"required"`
	OSVersion  string `json:"osversion" binding:"required"`
}

type RefreshAccessRequest struct {
	AccessToken  string `json:"accesstoken" binding:"required"`
	RefreshToken string `json:"refreshtoken" binding:"required"`
}

type DropAccessRequest struct {
	AccessToken string `json:"accesstoken" binding:"required"`
	DeviceUUID  string `json:"deviceuuid" binding:"required"`
}

func (h *AccessHandler) RequestAccess(c *gin.Context) {
	var req RequestAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.GrantAccessCommand{
		Username:   req.Username,
		Password:   req.Password,
		ClientID:   req.ClientID,
		DeviceUUID: req.DeviceUUID,
		Platform:   req.Platform,
		DeviceType: req.Type,
		DeviceName: req.DeviceName,
		OS:         req.OS,
		OSVersion:  req.OSVersion,
	}

	result, err := h.grantUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.reportAccessError(c, "access request failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tokenPayload(result.Authorization))
}

func (h *AccessHandler) VerifyAccess(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "access token is required")
		return
	}

	_, err := h.validateUseCase.Execute(c.Request.Context(), usecases.ValidateAccessCommand{
		AccessToken: accessToken,
	})
	if err != nil {
		h.reportAccessError(c, "access verification failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"accesstoken": accessToken,
		"authorized":  true,
	})
}

func (h *AccessHandler) RefreshAccess(c *gin.Context) {
	var req RefreshAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.refreshUseCase.Execute(c.Request.Context(), usecases.RefreshAccessCommand{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.reportAccessError(c, "token refresh failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tokenPayload(result.Authorization))
}

func (h *AccessHandler) DropAccess(c *gin.Context) {
	var req DropAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.revokeUseCase.Execute(c.Request.Context(), usecases.RevokeAccessCommand{
		AccessToken: req.AccessToken,
		DeviceUUID:  req.DeviceUUID,
	})
	if err != nil {
		h.reportAccessError(c, "access revocation failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"accesstoken": req.AccessToken,
		"dropped":     true,
	})
}

// reportAccessError logs per error classification, then writes the mapped
// response. Routine denials (expirations, grace notices) stay out of the
// error stream.
func (h *AccessHandler) reportAccessError(c *gin.Context, msg string, err error) {
	args := []any{"error", err, "client_ip", c.ClientIP()}

	switch {
	case errors.IsSecurityEvent(err):
		h.logger.Warnw(msg, append(args, "security_event", true)...)
	case errors.ShouldLogAccessError(err):
		h.logger.Errorw(msg, args...)
	default:
		h.logger.Debugw(msg, args...)
	}

	utils.ErrorResponseWithError(c, err)
}

// tokenPayload renders an authorization in the wire format. Timestamps go
// out as unix seconds.
func tokenPayload(auth *authorization.Authorization) gin.H {
	return gin.H{
		"accesstoken":    auth.AccessToken,
		"accessexpire":   auth.AccessExpiresAt.Unix(),
		"accesscreated":  auth.AccessCreatedAt.Unix(),
		"refreshtoken":   auth.RefreshToken,
		"refreshexpire":  auth.RefreshExpiresAt.Unix(),
		"refreshcreated": auth.RefreshCreatedAt.Unix(),
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
