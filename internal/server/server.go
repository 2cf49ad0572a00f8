package server

import (
	"context"
	"net/http"
	"time"

	"gymgate/internal/auth"
	"gymgate/internal/checkin"
	"gymgate/internal/config"
	"gymgate/internal/email"
	"gymgate/internal/member"
	"gymgate/internal/owner"
	"gymgate/internal/plan"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	ownerRepo := owner.NewRepository(db)
	planRepo := plan.NewRepository(db)
	memberRepo := member.NewRepository(db)
	checkinRepo := checkin.NewRepository(db)

	planService := plan.NewService(planRepo)
	memberService := member.NewService(memberRepo, planRepo, ownerRepo, emailService, cfg.JWTSecret)
	checkinService := checkin.NewService(checkinRepo, memberRepo)
	ownerService := owner.NewService(ownerRepo, memberRepo, planRepo, checkinRepo, emailService, cfg.JWTSecret, cfg.TrialDays)

	ownerHandler := owner.NewHandler(ownerService)
	planHandler := plan.NewHandler(planService)
	memberHandler := member.NewHandler(memberService)
	checkinHandler := checkin.NewHandler(checkinService)

	authLimit := RateLimitMiddleware(5, 10)

	public := router.Group("/auth")
	public.Use(authLimit)
	{
		public.POST("/owner/register", ownerHandler.Register)
		public.POST("/owner/login", ownerHandler.Login)
		public.POST("/member/login", memberHandler.Login)
		public.POST("/refresh", ownerHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	ownerGroup := router.Group("/owner")
	ownerGroup.Use(authMiddleware, auth.RequireRole(auth.RoleOwner))
	{
		ownerGroup.GET("/dashboard", ownerHandler.Dashboard)
		ownerGroup.GET("/profile", ownerHandler.GetProfile)
		ownerGroup.PUT("/profile", ownerHandler.UpdateProfile)
		ownerGroup.POST("/subscription", ownerHandler.Upgrade)

		ownerGroup.POST("/plans", planHandler.Create)
		ownerGroup.GET("/plans", planHandler.List)
		ownerGroup.PUT("/plans/:planID", planHandler.Update)
		ownerGroup.DELETE("/plans/:planID", planHandler.Disable)

		ownerGroup.POST("/members", memberHandler.Create)
		ownerGroup.GET("/members", memberHandler.List)
		ownerGroup.GET("/members/:memberID", memberHandler.Get)
		ownerGroup.PUT("/members/:memberID", memberHandler.Update)
		ownerGroup.POST("/members/:memberID/renew", memberHandler.Renew)
		ownerGroup.POST("/members/:memberID/cancel", memberHandler.Cancel)

		ownerGroup.GET("/checkins", checkinHandler.List)
		ownerGroup.GET("/checkins/stats", checkinHandler.Stats)
		ownerGroup.GET("/checkins/daily", checkinHandler.Daily)
	}

	// The scanner station posts here on every QR read. Rate limited so a
	// stuck scanner can't flood the ledger.
	entry := router.Group("/entry")
	entry.Use(RateLimitMiddleware(10, 20), authMiddleware, auth.RequireRole(auth.RoleOwner))
	{
		entry.POST("", checkinHandler.Entry)
	}

	me := router.Group("/me")
	me.Use(authMiddleware, auth.RequireRole(auth.RoleMember))
	{
		me.GET("", memberHandler.Me)
		me.GET("/qr", memberHandler.MyQR)
		me.GET("/checkins", checkinHandler.MyHistory)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
