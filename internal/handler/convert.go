package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/safwanhafeez/Document-Scanner-OCR/internal/model"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Converter is what the handler needs from the conversion service.
type Converter interface {
	Convert(ctx context.Context, image []byte, displayName string) ([]byte, error)
	Health(ctx context.Context) model.HealthResponse
}

type ConvertHandler struct {
	svc Converter
	log *logrus.Logger
}

func NewConvertHandler(svc Converter, log *logrus.Logger) *ConvertHandler {
	return &ConvertHandler{svc: svc, log: log}
}

// Convert accepts one multipart image upload and responds with the assembled
// document as an attachment.
func (h *ConvertHandler) Convert(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "no file provided"})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "empty filename"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	data, err := h.svc.Convert(c.Request.Context(), image, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "API key not configured"})
		case errors.Is(err, service.ErrOracleUnavailable):
			c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: "processing failed"})
		default:
			h.log.Errorf("conversion failed for %s: %v", fileHeader.Filename, err)
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "processing failed"})
		}
		return
	}

	name := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "converted_"+name+".docx"))
	c.Data(http.StatusOK, docxMIME, data)
}

// Health reports API-key and oracle reachability status.
func (h *ConvertHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Health(c.Request.Context()))
}
