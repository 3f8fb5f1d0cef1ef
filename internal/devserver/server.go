// Package devserver is a development stand-in for the remote viáticos API.
// It implements just enough of POST /form and POST /document to exercise the
// client end to end; it is a fixture, not a production server.
package devserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gfranco7/viaticos-platform/internal/panel"
	"github.com/gfranco7/viaticos-platform/internal/viatico"
)

// Server holds received submissions in memory and serves the aggregate
// report built from them.
type Server struct {
	logger *zap.Logger

	mu          sync.Mutex
	submissions []storedSubmission
}

type storedSubmission struct {
	ID         string
	ReceivedAt time.Time
	Request    viatico.Request
}

// New creates a dev server with no stored submissions.
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{logger: logger}
}

// Router builds the gin engine with the two API endpoints and a health
// check.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.loggingMiddleware())
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "viaticos-devserver",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/form", s.handleForm)
		api.POST("/document", s.handleDocument)
	}

	return router
}

// handleForm accepts one reimbursement request and returns a receipt.
func (s *Server) handleForm(c *gin.Context) {
	var req viatico.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	sub := storedSubmission{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now(),
		Request:    req,
	}

	s.mu.Lock()
	s.submissions = append(s.submissions, sub)
	count := len(s.submissions)
	s.mu.Unlock()

	s.logger.Info("submission stored",
		zap.String("id", sub.ID),
		zap.String("solicitante", req.Solicitante),
		zap.Int("total", count))

	c.JSON(http.StatusCreated, gin.H{"id": sub.ID, "status": "received"})
}

// handleDocument serves the aggregate report workbook.
func (s *Server) handleDocument(c *gin.Context) {
	var body struct {
		Period string `json:"period"`
	}
	// Body is optional; ignore bind failures and default the period.
	_ = c.ShouldBindJSON(&body)
	if body.Period == "" {
		body.Period = "full"
	}

	s.mu.Lock()
	subs := make([]storedSubmission, len(s.submissions))
	copy(subs, s.submissions)
	s.mu.Unlock()

	content, err := buildReport(subs)
	if err != nil {
		s.logger.Error("report generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reporte_solicitudes_`+body.Period+`.xlsx"`)
	c.Data(http.StatusOK, panel.XLSXContentType, content)
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
