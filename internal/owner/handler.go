package owner

import (
	"net/http"

	"gymgate/internal/api"
	"gymgate/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Register a gym owner
// @Description  Creates an owner account on a trial subscription and returns tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body owner.RegisterRequest true "Registration payload"
// @Success      201 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      409 {object} api.Response
// @Router       /auth/owner/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	o, accessToken, refreshToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailExists:
			c.JSON(http.StatusConflict, api.Fail("registration failed", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("registration failed", "failed to create owner"))
		}
		return
	}

	c.JSON(http.StatusCreated, api.OK("owner registered", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Owner:        *o,
	}))
}

// @Summary      Owner login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body owner.LoginRequest true "Credentials"
// @Success      200 {object} api.Response
// @Failure      401 {object} api.Response
// @Router       /auth/owner/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	o, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.Fail("login failed", "invalid email or password"))
		return
	}

	c.JSON(http.StatusOK, api.OK("login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Owner:        *o,
	}))
}

// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body owner.RefreshRequest true "Refresh payload"
// @Success      200 {object} api.Response
// @Failure      401 {object} api.Response
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	newAccessToken, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.Fail("refresh failed", "invalid or expired refresh token"))
		return
	}

	c.JSON(http.StatusOK, api.OK("token refreshed", gin.H{"access_token": newAccessToken}))
}

// @Summary      Owner dashboard
// @Description  Member status breakdown, today's check-in stats, plan count,
// @Description  subscription state.
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.Response
// @Router       /owner/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("dashboard not fetched", "failed to build dashboard"))
		return
	}

	c.JSON(http.StatusOK, api.OK("dashboard fetched", dashboard))
}

// @Summary      Get owner profile
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.Response
// @Router       /owner/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("profile not found", err.Error()))
		return
	}

	c.JSON(http.StatusOK, api.OK("profile fetched", o))
}

// @Summary      Update owner profile
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body owner.UpdateProfileRequest true "Profile payload"
// @Success      200 {object} api.Response
// @Router       /owner/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	o, err := h.service.UpdateProfile(c.Request.Context(), ownerID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("profile not updated", err.Error()))
		return
	}

	c.JSON(http.StatusOK, api.OK("profile updated", o))
}

// @Summary      Upgrade subscription plan
// @Description  Moves the owner off trial onto basic or premium. Payment is
// @Description  handled outside this service.
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body owner.UpgradeRequest true "Upgrade payload"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Router       /owner/subscription [post]
func (h *Handler) Upgrade(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	o, err := h.service.Upgrade(c.Request.Context(), ownerID, req)
	if err != nil {
		switch err {
		case ErrInvalidPlan:
			c.JSON(http.StatusBadRequest, api.Fail("upgrade failed", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("upgrade failed", "failed to change subscription"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK("subscription updated", o))
}
