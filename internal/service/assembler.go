package service

import (
	"context"
	"fmt"

	"github.com/safwanhafeez/Document-Scanner-OCR/internal/document"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/segment"

	"github.com/sirupsen/logrus"
)

const (
	placeholderRenderFailed = "[Diagram Generation Failed]"
	placeholderEmbedFailed  = "[Diagram Generation Failed - Image Error]"
)

// assemble walks the segment stream in order and writes the document. Every
// diagram segment ends up as exactly one of: embedded image or placeholder
// paragraph. Only document-writer errors abort assembly.
func (s *ConvertService) assemble(ctx context.Context, doc document.Writer, sourceLabel string, segs []segment.Segment, workDir string, log *logrus.Entry) error {
	if err := doc.AddHeading("Source: "+sourceLabel, 1); err != nil {
		return err
	}

	counter := 0
	for _, seg := range segs {
		switch seg.Kind {
		case segment.Prose:
			if err := doc.AddParagraph(seg.Text); err != nil {
				return err
			}
		case segment.Diagram:
			artifactID := segment.SanitizeID(fmt.Sprintf("%s_%d", sourceLabel, counter))
			counter++
			log.Infof("processing diagram %d", counter)

			imgPath, err := s.renderer.Render(ctx, seg.Text, artifactID, workDir)
			if err != nil {
				log.Warnf("diagram %d render failed: %v", counter, err)
				if err := doc.AddParagraph(placeholderRenderFailed); err != nil {
					return err
				}
				continue
			}
			if err := doc.AddPicture(imgPath, s.cfg.Document.ImageWidthInches); err != nil {
				log.Warnf("diagram %d embed failed: %v", counter, err)
				if err := doc.AddParagraph(placeholderEmbedFailed); err != nil {
					return err
				}
			}
		}
	}

	return doc.AddPageBreak()
}
