package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/baxromumarov/seo-auditor/internal/audit"
)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 6.0
)

// WritePDF renders a Letter-sized audit summary. pageURL is printed as given.
func WritePDF(w io.Writer, pageURL string, res audit.Result) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("SEO Audit", true)
	pdf.AddPage()

	// core fonts are cp1252; the bullet and typographic quotes survive the translation.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "SEO Audit", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, pdfLineHeight, tr("URL: "+pageURL), "", "L", false)
	pdf.MultiCell(0, pdfLineHeight, fmt.Sprintf("Score: %d/100", res.Score), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Issues:", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, issue := range res.Issues {
		line := fmt.Sprintf("• %s: %s", severityLabel(issue.Severity), issue.Message)
		pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
