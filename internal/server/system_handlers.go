package server

import (
	"net/http"

	"gymgate/internal/api"
	"gymgate/internal/email"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Queue a test email
// @Tags         system
// @Produce      json
// @Param        email query string true "Recipient email"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      500 {object} api.Response
// @Router       /test-email [get]
func TestEmail(emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		testEmail := c.Query("email")
		if testEmail == "" {
			c.JSON(http.StatusBadRequest, api.Fail("invalid request", "email parameter required"))
			return
		}

		if err := emailService.Send(c.Request.Context(), testEmail, "Test User", "test", "Test Email from GymGate", "Email is working!"); err != nil {
			c.JSON(http.StatusInternalServerError, api.Fail("email not queued", err.Error()))
			return
		}

		c.JSON(http.StatusOK, api.OK("email queued", nil))
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
