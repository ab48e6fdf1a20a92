package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"edgetrans/internal/translate"
)

// TranslateRequest carries either Texts or a single Text, never both.
type TranslateRequest struct {
	Texts     []string `json:"texts"`
	Text      *string  `json:"text"`
	To        string   `json:"to" binding:"required"`
	From      string   `json:"from"`
	Retry     *int     `json:"retry" binding:"omitempty,min=0"`
	ChunkSize *int     `json:"chunk_size" binding:"omitempty,min=1,max=1000"`
}

type Translation struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type TranslateResponse struct {
	Translations []Translation `json:"translations"`
	Count        int           `json:"count"`
}

func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/healthz", s.handleHealth)
	v1 := router.Group("/v1")
	{
		v1.GET("/languages", s.handleLanguages)
		v1.POST("/translate", s.handleTranslate)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleLanguages(c *gin.Context) {
	ls := translate.Languages()
	codes := make([]string, len(ls))
	for i, l := range ls {
		codes[i] = string(l)
	}
	c.JSON(http.StatusOK, gin.H{"languages": codes})
}

func (s *Server) handleTranslate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if (req.Texts == nil) == (req.Text == nil) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": "exactly one of text or texts is required",
		})
		return
	}
	texts := req.Texts
	if req.Text != nil {
		texts = []string{*req.Text}
	}

	to, err := translate.ParseLanguage(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target language", "details": err.Error()})
		return
	}
	var opts []translate.CallOption
	if req.From != "" {
		from, err := translate.ParseLanguage(req.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source language", "details": err.Error()})
			return
		}
		opts = append(opts, translate.WithFrom(from))
	}
	if req.Retry != nil {
		opts = append(opts, translate.WithRetry(*req.Retry))
	}
	if req.ChunkSize != nil {
		opts = append(opts, translate.WithChunkSize(*req.ChunkSize))
	}

	ctx := c.Request.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	results, err := s.tr.Translate(ctx, to, texts, opts...)
	if err != nil {
		status := statusFor(err)
		s.log.Warn("translate failed", "status", status, "items", len(texts), "err", err)
		c.JSON(status, gin.H{"error": kindOf(err), "details": err.Error()})
		return
	}

	resp := TranslateResponse{Translations: make([]Translation, len(results)), Count: len(results)}
	for i, r := range results {
		resp.Translations[i] = Translation{Text: r.Text, Lang: string(r.Lang)}
	}
	c.JSON(http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, translate.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, translate.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func kindOf(err error) string {
	for _, kind := range []error{
		translate.ErrInvalidRequest,
		translate.ErrRateLimitExceeded,
		translate.ErrTranslationFailed,
		translate.ErrAuthFetch,
		translate.ErrProtocol,
		translate.ErrTransport,
		context.DeadlineExceeded,
		context.Canceled,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "internal error"
}
