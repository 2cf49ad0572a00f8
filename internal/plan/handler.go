package plan

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

// @Summary      Create a membership plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body plan.CreatePlanRequest true "Plan payload"
// @Success      201 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      409 {object} api.Response
// @Router       /owner/plans [post]
func (h *Handler) Create(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	plan, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		switch err {
		case ErrDuplicatePlanName:
			c.JSON(http.StatusConflict, api.Fail("plan not created", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("plan not created", "failed to create plan"))
		}
		return
	}

	c.JSON(http.StatusCreated, api.OK("plan created", plan))
}

// @Summary      List membership plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include disabled plans"
// @Success      200 {object} api.Response
// @Router       /owner/plans [get]
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	plans, err := h.service.List(c.Request.Context(), ownerID, includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("plans not fetched", "failed to fetch plans"))
		return
	}

	c.JSON(http.StatusOK, api.OK("plans fetched", plans))
}

// @Summary      Update a membership plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        planID path int true "Plan ID"
// @Param        request body plan.UpdatePlanRequest true "Plan payload"
// @Success      200 {object} api.Response
// @Failure      404 {object} api.Response
// @Failure      409 {object} api.Response
// @Router       /owner/plans/{planID} [put]
func (h *Handler) Update(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", "invalid plan ID"))
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	plan, err := h.service.Update(c.Request.Context(), ownerID, planID, req)
	if err != nil {
		switch err {
		case ErrPlanNotFound:
			c.JSON(http.StatusNotFound, api.Fail("plan not updated", err.Error()))
		case ErrDuplicatePlanName:
			c.JSON(http.StatusConflict, api.Fail("plan not updated", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("plan not updated", "failed to update plan"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK("plan updated", plan))
}

// @Summary      Disable a membership plan
// @Description  Soft-disable: the plan stays referenced by existing members.
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        planID path int true "Plan ID"
// @Success      200 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /owner/plans/{planID} [delete]
func (h *Handler) Disable(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", "invalid plan ID"))
		return
	}

	if err := h.service.Disable(c.Request.Context(), ownerID, planID); err != nil {
		switch err {
		case ErrPlanNotFound:
			c.JSON(http.StatusNotFound, api.Fail("plan not disabled", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("plan not disabled", "failed to disable plan"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK("plan disabled", nil))
}
