// Package server exposes an OCR provider over HTTP.
package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/raster"
	"github.com/opengs/tesswrap/tessdata"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

type Config struct {
	// Requests with bigger bodies are rejected. Default is 32 MiB
	MaxImageBytes int64 `mapstructure:"maxImageBytes"`
}

func DefaultConfig() Config {
	return Config{MaxImageBytes: 32 << 20}
}

type Server struct {
	provider ocr.Provider
	config   Config
	logger   zerolog.Logger
	engine   *gin.Engine
}

func New(provider ocr.Provider, config Config, logger zerolog.Logger) *Server {
	if config.MaxImageBytes <= 0 {
		config.MaxImageBytes = DefaultConfig().MaxImageBytes
	}
	s := &Server{
		provider: provider,
		config:   config,
		logger:   logger,
	}

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery(), s.requestID, s.accessLog)
	ginEngine.POST("/ocr", s.recognize)
	ginEngine.GET("/languages", s.languages)
	ginEngine.GET("/health", s.health)
	s.engine = ginEngine
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("listening")
	if err := s.engine.Run(addr); err != nil {
		return errors.Join(errors.New("failed to run HTTP server engine"), err)
	}
	return nil
}

func (s *Server) requestID(ctx *gin.Context) {
	id := ctx.GetHeader(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	ctx.Set("requestID", id)
	ctx.Header(RequestIDHeader, id)
	ctx.Next()
}

func (s *Server) accessLog(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	s.logger.Info().
		Str("requestID", ctx.GetString("requestID")).
		Str("method", ctx.Request.Method).
		Str("path", ctx.Request.URL.Path).
		Int("status", ctx.Writer.Status()).
		Dur("duration", time.Since(start)).
		Msg("request")
}

// Reads image from "file" multipart field or from the raw body
func (s *Server) readImage(ctx *gin.Context) ([]byte, error) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, s.config.MaxImageBytes)
	// any other content type, form encoded included, is the image itself
	if ctx.ContentType() != "multipart/form-data" {
		return io.ReadAll(ctx.Request.Body)
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return nil, errors.Join(errors.New("multipart request without \"file\" field"), err)
	}
	f, err := file.Open()
	if err != nil {
		return nil, errors.Join(errors.New("failed to open uploaded file"), err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) recognize(ctx *gin.Context) {
	data, err := s.readImage(ctx)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.fail(ctx, status, errors.Join(errors.New("failed to read request body"), err))
		return
	}
	if len(data) == 0 {
		s.fail(ctx, http.StatusBadRequest, errors.New("empty image"))
		return
	}
	mimeType := raster.DetectMimeType(data)
	if !s.provider.IsMimeTypeSupported(mimeType) {
		s.fail(ctx, http.StatusUnsupportedMediaType, &raster.ErrMimeTypeNotSupported{MimeType: mimeType})
		return
	}

	result, err := s.provider.Recognize(ctx.Request.Context(), bytes.NewReader(data))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, raster.ErrBadFile) || errors.Is(err, raster.ErrBadRaster) {
			status = http.StatusUnprocessableEntity
		}
		s.fail(ctx, status, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":    true,
		"requestId": ctx.GetString("requestID"),
		"mimeType":  mimeType,
		"result":    result,
		"error":     "",
	})
}

func (s *Server) fail(ctx *gin.Context, status int, err error) {
	s.logger.Warn().Err(err).Str("requestID", ctx.GetString("requestID")).Msg("OCR request failed")
	ctx.JSON(status, gin.H{
		"status":    false,
		"requestId": ctx.GetString("requestID"),
		"result":    nil,
		"error":     err.Error(),
	})
}

type language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

func (s *Server) languages(ctx *gin.Context) {
	installed := s.provider.Languages()
	languages := make([]language, 0, len(installed))
	for _, code := range installed {
		languages = append(languages, language{
			Code: code,
			Name: tessdata.DisplayName(code),
			Tag:  tessdata.FromTesseract(code),
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"languages": languages})
}

func (s *Server) health(ctx *gin.Context) {
	body := gin.H{"status": "ok"}
	if named, ok := s.provider.(interface{ EngineName() string }); ok {
		body["engine"] = named.EngineName()
	}
	ctx.JSON(http.StatusOK, body)
}
