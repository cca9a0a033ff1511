package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/limaJavier/examseating/pkg/model"

	"github.com/go-pdf/fpdf"
	"github.com/samber/lo"
)

const (
	EmptyBench = "-"
	lineHeight = 5.0
	padding    = 1.5
)

// WritePdf renders every room on its own A4 page: a "Room <no>" title followed by a bordered table with one cell per bench
func WritePdf(allocations []model.RoomAllocation, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 15)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, allocation := range allocations {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, translate(fmt.Sprintf("Room %v", allocation.RoomNo)), "", 1, "C", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "", 9)
		writeGrid(pdf, allocation, translate)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("cannot write pdf %v: %w", path, err)
	}
	return nil
}

func writeGrid(pdf *fpdf.Fpdf, allocation model.RoomAllocation, translate func(string) string) {
	if allocation.Columns == 0 {
		return
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	width := (pageWidth - left - right) / float64(allocation.Columns)

	for _, benches := range allocation.Grid {
		labels := lo.Map(benches, func(bench []model.SeatEntry, _ int) string {
			return translate(model.BenchLabel(bench, EmptyBench))
		})

		// Row height follows the tallest bench once wrapped to the column width
		lines := lo.Max(lo.Map(labels, func(label string, _ int) int {
			return len(pdf.SplitLines([]byte(label), width-2*padding))
		}))
		height := float64(max(lines, 1))*lineHeight + 2*padding

		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
		}

		y := pdf.GetY()
		for col, label := range labels {
			x := left + float64(col)*width
			pdf.Rect(x, y, width, height, "D")
			pdf.SetXY(x+padding, y+padding)
			pdf.MultiCell(width-2*padding, lineHeight, label, "", "C", false)
		}
		pdf.SetXY(left, y+height)
	}
}
