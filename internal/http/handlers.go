package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kinvoice/internal/pagination"
	"kinvoice/internal/repository"
	"kinvoice/internal/service"
)

// Имена сущностей в заголовках уведомлений и ошибках
const (
	entityInvoice  = "kinvoiceInvoice"
	entityShipment = "kinvoiceShipment"
)

type Options struct {
	// AppName prefix of X-<AppName>-alert headers
	AppName string
	Paging  pagination.Defaults
	Swagger bool
	// Health is pinged by /management/health; nil reports UP
	Health repository.Pinger
}

type Server struct {
	engine    *gin.Engine
	invoices  *service.InvoiceService
	shipments *service.ShipmentService
	appName   string
	paging    pagination.Defaults
	swagger   bool
	health    repository.Pinger
}

func NewServer(invoices *service.InvoiceService, shipments *service.ShipmentService, opts Options) *Server {
	registerValidators()
	if opts.AppName == "" {
		opts.AppName = "kinvoiceApp"
	}
	r := gin.New()
	r.Use(requestID(), requestLogger(), recovery())
	s := &Server{
		engine:    r,
		invoices:  invoices,
		shipments: shipments,
		appName:   opts.AppName,
		paging:    opts.Paging,
		swagger:   opts.Swagger,
		health:    opts.Health,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	if s.swagger {
		s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	s.engine.GET("/management/health", s.healthCheck)

	api := s.engine.Group("/api")
	{
		invoices := api.Group("/invoices")
		invoices.POST("", s.createInvoice)
		invoices.PUT("", s.updateInvoice)
		invoices.GET("", s.listInvoices)
		invoices.GET(":id", s.getInvoice)
		invoices.DELETE(":id", s.deleteInvoice)

		shipments := api.Group("/shipments")
		shipments.POST("", s.createShipment)
		shipments.PUT("", s.updateShipment)
		shipments.GET("", s.listShipments)
		shipments.GET(":id", s.getShipment)
		shipments.DELETE(":id", s.deleteShipment)
	}
}

// @Summary Health check
// @Tags management
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /management/health [get]
func (s *Server) healthCheck(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// pathID разбирает :id; при ошибке отвечает 400
func (s *Server) pathID(c *gin.Context, entity string) (int64, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		s.failure(c, http.StatusBadRequest, problem{
			Type:       problemWithMessage,
			Title:      "invalid id",
			EntityName: entity,
			ErrorKey:   "idinvalid",
		})
		return 0, false
	}
	return id, true
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// requestURL абсолютный URL текущего запроса для Link-заголовков
func requestURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Scheme = "http"
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		u.Scheme = proto
	}
	u.Host = c.Request.Host
	return &u
}

func writePageHeaders[T any](c *gin.Context, page pagination.Page[T]) {
	for k, v := range pagination.Headers(requestURL(c), page) {
		for _, vv := range v {
			c.Writer.Header().Add(k, vv)
		}
	}
}
