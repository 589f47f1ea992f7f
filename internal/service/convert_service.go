package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/safwanhafeez/Document-Scanner-OCR/internal/config"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/document"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/model"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/sandbox"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/segment"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotConfigured means no API key is present; detected before any
	// network call is attempted.
	ErrNotConfigured = errors.New("api key not configured")
	// ErrOracleUnavailable means the model returned no usable text; terminal
	// for the whole conversion.
	ErrOracleUnavailable = errors.New("no usable response from model")
)

// Oracle is the remote vision model, reduced to the two calls this service
// makes.
type Oracle interface {
	Transcribe(ctx context.Context, image []byte) (string, error)
	Ping(ctx context.Context) error
}

// ConvertService turns one uploaded image into a serialized document:
// transcription, segmentation, diagram rendering, assembly.
type ConvertService struct {
	cfg      *config.Config
	log      *logrus.Logger
	oracle   Oracle
	renderer sandbox.Renderer

	newDoc       func(title string) (document.Writer, error)
	newWorkspace func() (*storage.Workspace, error)
}

func NewConvertService(cfg *config.Config, log *logrus.Logger, oracle Oracle, renderer sandbox.Renderer) *ConvertService {
	return &ConvertService{
		cfg:      cfg,
		log:      log,
		oracle:   oracle,
		renderer: renderer,
		newDoc: func(title string) (document.Writer, error) {
			return document.NewDocx(title)
		},
		newWorkspace: storage.NewWorkspace,
	}
}

// Convert runs the whole pipeline for one image. Diagram failures degrade to
// inline placeholders; only a missing key, an unusable oracle response, or an
// internal fault fail the request.
func (s *ConvertService) Convert(ctx context.Context, image []byte, displayName string) ([]byte, error) {
	if s.cfg.Gemini.APIKey == "" {
		return nil, ErrNotConfigured
	}

	log := s.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"file":       displayName,
	})
	log.Infof("starting conversion (%d bytes)", len(image))

	ws, err := s.newWorkspace()
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	text, err := s.oracle.Transcribe(ctx, image)
	if err != nil {
		log.Errorf("transcription failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		log.Error("oracle returned no text")
		return nil, fmt.Errorf("%w: empty response text", ErrOracleUnavailable)
	}

	doc, err := s.newDoc(s.cfg.Document.Title)
	if err != nil {
		return nil, err
	}

	if err := s.assemble(ctx, doc, displayName, segment.Parse(text), ws.Dir, log); err != nil {
		return nil, err
	}

	data, err := doc.SaveToBytes()
	if err != nil {
		return nil, err
	}
	log.Info("conversion completed")
	return data, nil
}

// Health reports whether a key is configured and, if so, whether the remote
// catalog answers.
func (s *ConvertService) Health(ctx context.Context) model.HealthResponse {
	resp := model.HealthResponse{
		Status:           "ok",
		APIKeyConfigured: s.cfg.Gemini.APIKey != "",
	}
	if resp.APIKeyConfigured {
		if err := s.oracle.Ping(ctx); err != nil {
			s.log.Errorf("gemini api test failed: %v", err)
		} else {
			resp.APIWorking = true
		}
	}
	return resp
}
