package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/papudim/sales-report/pkg/model"
)

const chartWidthMM = 180

// RenderPDF lays out the printable report: headline figures, the top
// sellers list and each non-empty chart image, one below the other.
func RenderPDF(title string, s model.Summary, charts ...[]byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("sales-report", true)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	line := func(h float64, text string) {
		pdf.CellFormat(0, h, tr(text), "", 1, "", false, 0, "")
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	line(10, "Total revenue: "+s.TotalRevenue.StringFixed(2))
	line(8, fmt.Sprintf("Paid orders: %d of %d", s.PaidOrders, s.OrdersSeen))
	if !s.GeneratedAt.IsZero() {
		line(8, "Generated at: "+s.GeneratedAt.UTC().Format(time.RFC3339))
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	line(10, fmt.Sprintf("Top %d best sellers:", len(s.TopItems)))
	pdf.SetFont("Arial", "", 12)
	if len(s.TopItems) == 0 {
		line(8, "No paid orders.")
	}
	for _, it := range s.TopItems {
		line(8, fmt.Sprintf("- %s: %d units", it.Name, it.Quantity))
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range charts {
		if len(img) == 0 {
			continue
		}
		name := fmt.Sprintf("chart-%d", i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		pdf.Ln(8)
		pdf.ImageOptions(name, 10, 0, chartWidthMM, 0, true, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
