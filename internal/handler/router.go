package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"court-booking/internal/domain/member"
	"court-booking/internal/handler/api"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/ratelimit"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *slog.Logger
	AuthMiddleware *middleware.AuthMiddleware
	RateLimits     *ratelimit.Store

	AuthHandler    *api.AuthHandler
	MemberHandler  *api.MemberHandler
	BookingHandler *api.BookingHandler
	AdminHandler   *api.AdminHandler
	CatalogHandler *api.CatalogHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limited := []gin.HandlerFunc{middleware.RateLimit(p.RateLimits)}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: p.AuthHandler.Register, Mw: limited},
				{Method: http.MethodGet, Path: "/verify", Handler: p.AuthHandler.Verify},
				{Method: http.MethodPost, Path: "/resend-verification", Handler: p.AuthHandler.ResendVerification, Mw: limited},
				{Method: http.MethodPost, Path: "/login", Handler: p.AuthHandler.Login, Mw: limited},
				{Method: http.MethodPost, Path: "/logout", Handler: p.AuthHandler.Logout},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/courts", Handler: p.CatalogHandler.ListCourts},
			{Method: http.MethodGet, Path: "/entry-types", Handler: p.CatalogHandler.ListEntryTypes},
		})

		me := apiGroup.Group("/me")
		me.Use(p.AuthMiddleware.RequireAuth())
		{
			addRoutes(me, []route{
				{Method: http.MethodGet, Path: "", Handler: p.MemberHandler.Me},
				{Method: http.MethodPut, Path: "", Handler: p.MemberHandler.UpdateMe},
				{Method: http.MethodDelete, Path: "", Handler: p.MemberHandler.DeleteMe},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(p.AuthMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "/quota", Handler: p.BookingHandler.RemainingQuota},
				{Method: http.MethodGet, Path: "/:courtId/:date", Handler: p.BookingHandler.ListForCourtAndDate},
				{Method: http.MethodPost, Path: "", Handler: p.BookingHandler.Reserve, Mw: limited},
				{Method: http.MethodDelete, Path: "/:courtId/:date/:hour", Handler: p.BookingHandler.Cancel, Mw: limited},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(p.AuthMiddleware.RequireAuth(), p.AuthMiddleware.RequireRoleAtLeast(member.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/members", Handler: p.AdminHandler.ListMembers},
				{Method: http.MethodDelete, Path: "/members/:id", Handler: p.AdminHandler.DeleteMember},
				{Method: http.MethodPatch, Path: "/members/:id/admin", Handler: p.AdminHandler.SetAdmin},
				{Method: http.MethodPatch, Path: "/members/:id/membership", Handler: p.AdminHandler.SetMembershipPaid},
				{Method: http.MethodPatch, Path: "/members/:id/quota", Handler: p.AdminHandler.SetDailyQuota},
				{Method: http.MethodGet, Path: "/bookings", Handler: p.AdminHandler.ListUpcoming},
				{Method: http.MethodDelete, Path: "/bookings/:courtId/:date/:hour", Handler: p.AdminHandler.CancelBooking},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
