package document

import (
	"errors"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
)

// Docx writes a Word document via godocx.
type Docx struct {
	root *docx.RootDoc
}

// NewDocx creates a fresh document carrying the top-level title.
func NewDocx(title string) (*Docx, error) {
	root, err := godocx.NewDocument()
	if err != nil {
		return nil, err
	}
	d := &Docx{root: root}
	if err := d.AddHeading(title, 0); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Docx) AddHeading(text string, level int) error {
	_, err := d.root.AddHeading(text, uint(level))
	return err
}

func (d *Docx) AddParagraph(text string) error {
	d.root.AddParagraph(text)
	return nil
}

// AddPicture embeds the image at the given display width, deriving the
// height from the image's intrinsic aspect ratio. A file that cannot be
// decoded is an embed failure the assembler turns into a placeholder.
func (d *Docx) AddPicture(path string, widthInches float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("image has no dimensions")
	}
	heightInches := widthInches * float64(cfg.Height) / float64(cfg.Width)
	_, err = d.root.AddPicture(path, units.Inch(widthInches), units.Inch(heightInches))
	return err
}

func (d *Docx) AddPageBreak() error {
	d.root.AddPageBreak()
	return nil
}

// SaveToBytes serializes through a scratch file, which is removed again
// before returning.
func (d *Docx) SaveToBytes() ([]byte, error) {
	tmp, err := os.CreateTemp("", "converted-*.docx")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := d.root.SaveTo(tmpPath); err != nil {
		return nil, err
	}
	return os.ReadFile(tmpPath)
}
