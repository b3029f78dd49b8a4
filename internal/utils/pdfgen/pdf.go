package pdfgen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"Foodgram-Backend/domain"

	"github.com/jung-kurt/gofpdf"
)

// ErrFontNotFound means the configured shopping-list font is missing on
// disk. This is a deployment problem, not a request problem: the renderer
// refuses to construct and the app refuses to start.
var ErrFontNotFound = errors.New("shopping list font not found")

const fontFileName = "shopping-list.ttf"

// ShoppingListRenderer turns aggregated shopping-list lines into a
// downloadable document. The PDF backend is an implementation detail behind
// this interface.
type ShoppingListRenderer interface {
	Render(lines []domain.ShoppingListLine) ([]byte, error)
}

type pdfRenderer struct {
	fontDir string
}

// NewShoppingListRenderer builds the gofpdf-backed renderer. When fontDir is
// empty the builtin Arial core font is used; otherwise fontDir must contain
// shopping-list.ttf.
func NewShoppingListRenderer(fontDir string) (ShoppingListRenderer, error) {
	if fontDir != "" {
		fontPath := filepath.Join(fontDir, fontFileName)
		if _, err := os.Stat(fontPath); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, fontPath)
		}
	}
	return &pdfRenderer{fontDir: fontDir}, nil
}

func (r *pdfRenderer) Render(lines []domain.ShoppingListLine) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)

	fontFamily := "Arial"
	if r.fontDir != "" {
		fontFamily = "ShoppingList"
		pdf.AddUTF8Font(fontFamily, "", filepath.Join(r.fontDir, fontFileName))
	}

	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 15)
	pdf.CellFormat(0, 10, "Ingredients:", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont(fontFamily, "", 10)
	for _, line := range lines {
		text := fmt.Sprintf("%s - %d %s", line.Name, line.TotalAmount, line.MeasurementUnit)
		pdf.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
