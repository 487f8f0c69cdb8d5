package server

import (
	"context"
	"net/http"

	"gringotts/internal/config"
	"gringotts/internal/customer"
	"gringotts/internal/employee"
	"gringotts/internal/ledger"
	"gringotts/internal/transaction"
	"gringotts/internal/uow"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	ledgerService := ledger.NewService(
		uow.NewFactory(db),
		customer.NewRepository(),
		employee.NewRepository(),
		transaction.NewRepository(),
	)
	ledgerHandler := ledger.NewHandler(ledgerService)

	router.POST("/transactions", ledgerHandler.CreateTransaction)
	router.GET("/transactions", ledgerHandler.GetAllTransactions)

	customers := router.Group("/customers")
	{
		customers.GET("", ledgerHandler.GetAllCustomers)
		customers.GET("/search", ledgerHandler.SearchCustomers)
		customers.GET("/:id", ledgerHandler.GetCustomer)
		customers.PUT("/:id", ledgerHandler.UpsertCustomer)
		customers.PATCH("/:id/character-name", ledgerHandler.UpdateCharacterName)
		customers.GET("/:id/transactions", ledgerHandler.GetTransactionsByCustomer)
	}

	router.POST("/auth/access-code", ledgerHandler.CheckAccessCode)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
