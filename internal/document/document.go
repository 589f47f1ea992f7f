// Package document defines the writer surface the assembler builds output
// through, plus the docx-backed implementation.
package document

// Writer is the ordered document being assembled. Implementations own the
// content until SaveToBytes hands the serialized form to the caller.
type Writer interface {
	AddHeading(text string, level int) error
	AddParagraph(text string) error
	AddPicture(path string, widthInches float64) error
	AddPageBreak() error
	SaveToBytes() ([]byte, error)
}
