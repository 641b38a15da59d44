package handler

import (
	"net/http"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/middleware"
	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "New account"
// @Success 201 {object} dto.LoginResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Current profile with role flags
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		writeServiceError(c, service.ErrUserNotFound)
		return
	}
	resp, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// callerID extracts the authenticated user id; guards guarantee the claims
// exist on protected routes.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	return id, err == nil
}
