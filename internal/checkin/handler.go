package checkin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymgate/internal/api"
	"gymgate/internal/auth"

	"github.com/gin-gonic/gin"
)

var errInvalidWindow = errors.New("invalid date window")

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Record a QR entry scan
// @Description  Resolves the scanned code and appends a success or failed
// @Description  check-in row. A rejected scan is a 200 with success=false.
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body checkin.EntryRequest true "Scan payload"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Router       /entry [post]
func (h *Handler) Entry(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", api.BindingError(err)))
		return
	}

	result, err := h.service.RecordEntry(c.Request.Context(), ownerID, req.QRCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("entry not recorded", "failed to record entry"))
		return
	}

	if !result.OK {
		c.JSON(http.StatusOK, api.Response{
			Success: false,
			Message: "entry rejected",
			Data:    result,
			Error:   result.Reason,
		})
		return
	}

	c.JSON(http.StatusOK, api.OK("entry recorded", result))
}

// @Summary      List check-ins
// @Description  Joined with member public profile fields; defaults to today.
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Param        from   query string false "Window start (YYYY-MM-DD)"
// @Param        to     query string false "Window end, exclusive (YYYY-MM-DD)"
// @Param        limit  query int    false "Page size"
// @Param        offset query int    false "Offset"
// @Success      200 {object} api.Response
// @Router       /owner/checkins [get]
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", err.Error()))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	checkIns, err := h.service.ListForOwner(c.Request.Context(), ownerID, from, to, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("checkins not fetched", "failed to fetch check-ins"))
		return
	}

	c.JSON(http.StatusOK, api.OK("checkins fetched", checkIns))
}

// @Summary      Check-in statistics for a window
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Window start (YYYY-MM-DD)"
// @Param        to   query string false "Window end, exclusive (YYYY-MM-DD)"
// @Success      200 {object} api.Response
// @Router       /owner/checkins/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", err.Error()))
		return
	}

	stats, err := h.service.StatsForWindow(c.Request.Context(), ownerID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("stats not fetched", "failed to fetch statistics"))
		return
	}

	c.JSON(http.StatusOK, api.OK("stats fetched", stats))
}

// @Summary      Daily check-in buckets for a window
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Window start (YYYY-MM-DD)"
// @Param        to   query string false "Window end, exclusive (YYYY-MM-DD)"
// @Success      200 {object} api.Response
// @Router       /owner/checkins/daily [get]
func (h *Handler) Daily(c *gin.Context) {
	ownerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "owner not authenticated"))
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request", err.Error()))
		return
	}

	stats, err := h.service.DailyStats(c.Request.Context(), ownerID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("stats not fetched", "failed to fetch daily statistics"))
		return
	}

	c.JSON(http.StatusOK, api.OK("daily stats fetched", stats))
}

// @Summary      Own attendance history
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200 {object} api.Response
// @Router       /me/checkins [get]
func (h *Handler) MyHistory(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "member not authenticated"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	checkIns, err := h.service.HistoryForMember(c.Request.Context(), memberID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("checkins not fetched", "failed to fetch attendance history"))
		return
	}

	c.JSON(http.StatusOK, api.OK("checkins fetched", checkIns))
}

// parseWindow reads the from/to query params; absent params default to the
// current UTC day. `to` is exclusive.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidWindow
		}
		from = parsed
	}

	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidWindow
		}
		to = parsed
	}

	if !to.After(from) {
		return time.Time{}, time.Time{}, errInvalidWindow
	}

	return from, to, nil
}
