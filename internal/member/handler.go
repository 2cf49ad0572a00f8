package member

import (
	"net/http"
	"strconv"

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

// @Summary      Register a member
// @Description  Owner-only: creates a member with an initial plan and mints a QR code.
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.CreateMemberRequest true "Member payload"
// @Success      201 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      409 {object} api.Response
// @Router       /owner/members [post]
func (h *Handler) Create(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	m, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		switch err {
		case ErrEmailExists:
			c.JSON(http.StatusConflict, api.Fail("member not created", err.Error()))
		case ErrPlanUnavailable, ErrInvalidBirthDate:
			c.JSON(http.StatusBadRequest, api.Fail("member not created", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("member not created", "failed to create member"))
		}
		return
	}

	c.JSON(http.StatusCreated, api.OK("member created", m))
}

// @Summary      Member login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body member.LoginRequest true "Credentials"
// @Success      200 {object} api.Response
// @Failure      401 {object} api.Response
// @Router       /auth/member/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	m, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.Fail("login failed", "invalid email or password"))
		return
	}

	c.JSON(http.StatusOK, api.OK("login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       *m,
	}))
}

// @Summary      List members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200 {object} api.Response
// @Router       /owner/members [get]
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	members, err := h.service.List(c.Request.Context(), ownerID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("members not fetched", "failed to fetch members"))
		return
	}

	c.JSON(http.StatusOK, api.OK("members fetched", members))
}

// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /owner/members/{memberID} [get]
func (h *Handler) Get(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", "invalid member ID"))
		return
	}

	m, err := h.service.Get(c.Request.Context(), ownerID, memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("member not found", err.Error()))
		return
	}

	c.JSON(http.StatusOK, api.OK("member fetched", m))
}

// @Summary      Update a member's contact details
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.UpdateMemberRequest true "Contact payload"
// @Success      200 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /owner/members/{memberID} [put]
func (h *Handler) Update(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", "invalid member ID"))
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	m, err := h.service.Update(c.Request.Context(), ownerID, memberID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("member not updated", err.Error()))
		return
	}

	c.JSON(http.StatusOK, api.OK("member updated", m))
}

// @Summary      Renew a membership
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.RenewRequest true "Renewal payload"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /owner/members/{memberID}/renew [post]
func (h *Handler) Renew(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", "invalid member ID"))
		return
	}

	var req RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	m, err := h.service.Renew(c.Request.Context(), ownerID, memberID, req.PlanID)
	if err != nil {
		switch err {
		case ErrMemberNotFound:
			c.JSON(http.StatusNotFound, api.Fail("membership not renewed", err.Error()))
		case ErrPlanUnavailable:
			c.JSON(http.StatusBadRequest, api.Fail("membership not renewed", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("membership not renewed", "failed to renew membership"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK("membership renewed", m))
}

// @Summary      Cancel a membership
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /owner/members/{memberID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", "invalid member ID"))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), ownerID, memberID); err != nil {
		switch err {
		case ErrMemberNotFound:
			c.JSON(http.StatusNotFound, api.Fail("membership not cancelled", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("membership not cancelled", "failed to cancel membership"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK("membership cancelled", nil))
}

// @Summary      Get own profile
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /me [get]
func (h *Handler) Me(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "member not authenticated"))
		return
	}

	m, err := h.service.GetSelf(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("profile not found", err.Error()))
		return
	}

	c.JSON(http.StatusOK, api.OK("profile fetched", m))
}

// @Summary      Get own QR code
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.Response
// @Router       /me/qr [get]
func (h *Handler) MyQR(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "member not authenticated"))
		return
	}

	m, err := h.service.GetSelf(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("profile not found", err.Error()))
		return
	}

	c.JSON(http.StatusOK, api.OK("qr code fetched", QRResponse{QRCode: m.QRCode}))
}
