package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haroun39/facteur/internal/config"
	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	debtdomain "github.com/haroun39/facteur/internal/debt/domain"
	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	"github.com/haroun39/facteur/internal/observability/logger"
	"github.com/haroun39/facteur/internal/observability/metrics"
	"github.com/haroun39/facteur/internal/observability/tracing"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
	reportdomain "github.com/haroun39/facteur/internal/report/domain"
)

// Server carries the HTTP handlers and their service dependencies.
type Server struct {
	cfg config.Config
	db  *gorm.DB
	log *zap.Logger

	customerSvc customerdomain.Service
	invoiceSvc  invoicedomain.Service
	paymentSvc  paymentdomain.Service
	debtSvc     debtdomain.Service
	reportSvc   reportdomain.Service
}

type ServerParam struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger

	CustomerSvc customerdomain.Service
	InvoiceSvc  invoicedomain.Service
	PaymentSvc  paymentdomain.Service
	DebtSvc     debtdomain.Service
	ReportSvc   reportdomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg: p.Config,
		db:  p.DB,
		log: p.Log.Named("server"),

		customerSvc: p.CustomerSvc,
		invoiceSvc:  p.InvoiceSvc,
		paymentSvc:  p.PaymentSvc,
		debtSvc:     p.DebtSvc,
		reportSvc:   p.ReportSvc,
	}
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/api/health"},
	}))
	engine.Use(tracing.GinMiddleware())
	engine.Use(metrics.GinMiddleware(httpMetrics))

	corsConfig := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-Id")
	engine.Use(cors.New(corsConfig))

	return engine
}

// RegisterAPIRoutes mounts the billing API under /api.
func (s *Server) RegisterAPIRoutes(engine *gin.Engine) {
	api := engine.Group("/api")

	api.GET("/health", s.Health)

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomer)
	api.PUT("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)
	api.GET("/customers/:id/invoices", s.ListCustomerInvoices)
	api.GET("/customers/:id/debt", s.GetCustomerDebt)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/items", s.ListInvoiceItems)

	api.POST("/payments", s.CreatePayment)
	api.GET("/payments", s.ListPayments)
	api.PUT("/payments/:id", s.UpdatePayment)
	api.DELETE("/payments/:id", s.DeletePayment)

	api.GET("/debts", s.ListDebts)
	api.GET("/products", s.ListProducts)

	api.GET("/reports/transactions", s.TransactionsReport)
	api.GET("/reports/summary", s.ReportSummary)

	if !s.cfg.IsProduction() {
		api.POST("/test/cleanup", s.TestCleanup)
	}
}

// @Summary      Health
// @Description  Liveness probe
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (s *Server) Health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener tied to the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// Module wires the HTTP surface into the fx graph.
var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server, engine *gin.Engine) {
		s.RegisterAPIRoutes(engine)
	}),
	fx.Invoke(RunHTTP),
)
