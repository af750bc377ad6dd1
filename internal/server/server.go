package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rezonia/facturx-engine/internal/model"
	"github.com/rezonia/facturx-engine/pkg/facturxlib"
)

var logger = logrus.WithField("component", "facturx.server")

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	generator *facturxlib.Generator
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:    config,
		router:    router,
		generator: facturxlib.NewGenerator(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/serialize", s.handleSerialize)
		v1.POST("/embed", s.handleEmbed)
		v1.POST("/generate", s.handleGenerate)
		v1.POST("/inspect", s.handleInspect)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSerialize(c *gin.Context) {
	var req SerializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	result, err := s.generator.Serialize(&req.Invoice, &req.Seller, &req.Buyer)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, SerializeResponse{
		Payload:  string(result.Payload),
		Warnings: result.Warnings,
	})
}

func (s *Server) handleEmbed(c *gin.Context) {
	container, ok := s.formFile(c, "container")
	if !ok {
		return
	}
	payload, ok := s.formFile(c, "payload")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	out, err := s.generator.Embed(ctx, container, payload)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", out)
}

func (s *Server) handleGenerate(c *gin.Context) {
	container, ok := s.formFile(c, "container")
	if !ok {
		return
	}

	invoiceJSON := c.PostForm("invoice")
	if invoiceJSON == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing invoice form field"})
		return
	}

	var req SerializeRequest
	if err := json.Unmarshal([]byte(invoiceJSON), &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice JSON", Details: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	out, result, err := s.generator.Generate(ctx, &req.Invoice, &req.Seller, &req.Buyer, container)
	if err != nil {
		s.renderError(c, err)
		return
	}

	if len(result.Warnings) > 0 {
		c.Header("X-Formatting-Warnings", strings.Join(result.Warnings, "; "))
	}
	c.Data(http.StatusOK, "application/pdf", out)
}

func (s *Server) handleInspect(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	report, err := s.generator.Inspect(body)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// formFile reads one uploaded file from a multipart form, rendering the
// error response itself when the part is missing or unreadable.
func (s *Server) formFile(c *gin.Context, name string) ([]byte, bool) {
	fh, err := c.FormFile(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " file", Details: err.Error()})
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unable to open " + name + " file", Details: err.Error()})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unable to read " + name + " file", Details: err.Error()})
		return nil, false
	}
	return data, true
}

// renderError maps typed engine errors onto HTTP status codes so delivery
// workflows can distinguish bad input from embedding failures.
func (s *Server) renderError(c *gin.Context, err error) {
	var verr *model.ValidationError
	var lerr *model.LineItemError
	var perr *model.ContainerParseError
	var eerr *model.EmbedError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: "validation"})
	case errors.As(err, &lerr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: "line_item"})
	case errors.As(err, &perr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: "container_parse"})
	case errors.As(err, &eerr):
		logger.WithError(err).Error("embedding failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Kind: "embedding"})
	default:
		logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
