package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/barcut/internal/model"
)

// partColor represents an RGB fill for a cut on a bar diagram.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	footerHeight = 8.0
	contentWidth = pageWidth - marginLeft - marginRight

	barHeight   = 8.0
	barGap      = 4.0
	barLabelW   = 18.0
	barOffcutW  = 32.0
	rowHeight   = 6.0
	sectionGap  = 6.0
	bodyBottomY = pageHeight - marginBottom - footerHeight
)

var (
	cutColWidths     = []float64{18, 18, 25, 35, 90, 55, 26}
	summaryColWidths = []float64{60, 28, 20, 20, 30, 32, 37, 40}
	extraColWidths   = []float64{55, 25, 22, 30, 60, 40, 35}
)

// report tracks the write position across pages.
type report struct {
	pdf *fpdf.Fpdf
	y   float64
}

// ExportPDF writes a paginated report: for each material a page of bar
// diagrams followed by the cut sequence, then pages for the KANBAN,
// non-cuttable and skipped records, then a summary page. Long sections
// continue on new pages with their heading repeated.
func ExportPDF(path string, result model.PlanResult) error {
	if len(result.Materials) == 0 && len(Extras(result)) == 0 {
		return fmt.Errorf("nothing to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-(marginBottom + 2))
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		footer := fmt.Sprintf("BarCut - run %s - page %d of {nb}", shortRunID(result.RunID), pdf.PageNo())
		pdf.CellFormat(0, 4, footer, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	r := &report{pdf: pdf}
	for _, mp := range result.Materials {
		r.renderMaterial(mp)
	}
	for _, section := range Extras(result) {
		r.renderExtra(section)
	}
	r.renderSummary(result)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// newPage starts a page with a title line.
func (r *report) newPage(title string) {
	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 14)
	r.pdf.SetXY(marginLeft, marginTop)
	r.pdf.CellFormat(contentWidth, headerHeight, title, "", 0, "L", false, 0, "")
	r.y = marginTop + headerHeight
}

// ensure moves to a continuation page when h does not fit. It reports
// whether a page break happened.
func (r *report) ensure(h float64, title string) bool {
	if r.y+h <= bodyBottomY {
		return false
	}
	r.newPage(title + " (continued)")
	return true
}

func (r *report) text(font string, size float64, s string) {
	r.pdf.SetFont("Helvetica", font, size)
	r.pdf.SetXY(marginLeft, r.y)
	r.pdf.CellFormat(contentWidth, 5, s, "", 0, "L", false, 0, "")
	r.y += 6
}

func (r *report) renderMaterial(mp model.MaterialPlan) {
	title := fmt.Sprintf("Material: %s (bar length %s)", mp.Material, formatLength(mp.MasterLength))
	r.newPage(title)

	r.text("", 10, fmt.Sprintf("Bars: %d | Cuts: %d | Utilization: %.1f%% | Total offcut: %s | Plan: %s | Exact search: %s",
		len(mp.Bars), mp.CutCount(), mp.Utilization(), formatLength(mp.TotalOffcut()), mp.Source, mp.ExactOutcome))
	if len(mp.Warnings) > 0 {
		r.pdf.SetTextColor(200, 0, 0)
		for _, w := range mp.Warnings {
			r.text("", 9, "Warning: "+w)
		}
		r.pdf.SetTextColor(0, 0, 0)
	}
	r.y += 2

	colors := colorIndex(mp)
	for i, bar := range mp.Bars {
		r.ensure(barHeight+barGap, title)
		r.drawBar(mp.MasterLength, bar, i+1, colors)
	}

	r.y += sectionGap
	r.ensure(rowHeight*3, title)
	r.text("B", 12, "Cut Sequence")
	r.tableHeader(CutHeaders[1:], cutColWidths)
	for i, row := range MaterialRows(mp) {
		if r.ensure(rowHeight, title) {
			r.tableHeader(CutHeaders[1:], cutColWidths)
		}
		r.tableRow(row.Strings()[1:], cutColWidths, i)
	}
}

// colorIndex assigns each distinct part of a material a palette slot, so a
// part keeps its colour on every bar.
func colorIndex(mp model.MaterialPlan) map[string]int {
	idx := make(map[string]int)
	for _, bar := range mp.Bars {
		for _, cut := range bar.Cuts {
			key := cut.PartNo + "\x00" + cut.PartName
			if _, ok := idx[key]; !ok {
				idx[key] = len(idx)
			}
		}
	}
	return idx
}

// drawBar renders one bar as a strip scaled to the content width, one
// segment per cut and a grey tail for the offcut.
func (r *report) drawBar(masterLength float64, bar model.CutPlan, num int, colors map[string]int) {
	pdf := r.pdf
	stripW := contentWidth - barLabelW - barOffcutW
	scale := stripW / masterLength

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, r.y+1.5)
	pdf.CellFormat(barLabelW, 5, fmt.Sprintf("Bar %d", num), "", 0, "L", false, 0, "")

	x := marginLeft + barLabelW
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Helvetica", "", 6)
	for _, cut := range bar.Cuts {
		w := cut.Length * scale
		col := partColors[colors[cut.PartNo+"\x00"+cut.PartName]%len(partColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, r.y, w, barHeight, "FD")

		label := formatLength(cut.Length)
		if lw := pdf.GetStringWidth(label); lw < w-1 {
			pdf.SetXY(x+(w-lw)/2, r.y+(barHeight-3)/2)
			pdf.CellFormat(lw, 3, label, "", 0, "C", false, 0, "")
		}
		x += w
	}

	if bar.Offcut > 0 {
		pdf.SetFillColor(230, 230, 230)
		pdf.SetDrawColor(150, 150, 150)
		pdf.Rect(x, r.y, bar.Offcut*scale, barHeight, "FD")
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(marginLeft+barLabelW+stripW+2, r.y+1.5)
	pdf.CellFormat(barOffcutW-2, 5, "offcut "+formatLength(bar.Offcut), "", 0, "L", false, 0, "")

	r.y += barHeight + barGap
}

func (r *report) tableHeader(headers []string, widths []float64) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, r.y)
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	r.y += rowHeight
}

func (r *report) tableRow(cells []string, widths []float64, n int) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "", 9)
	if n%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	x := marginLeft
	for i, c := range cells {
		pdf.SetXY(x, r.y)
		pdf.CellFormat(widths[i], rowHeight, fitText(pdf, c, widths[i]-2), "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	r.y += rowHeight
}

// fitText truncates s with an ellipsis so it fits in w millimetres.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func (r *report) renderExtra(section ExtraSection) {
	r.newPage(section.Title)
	r.tableHeader(ExtraHeaders, extraColWidths)
	for i, row := range section.Rows {
		if r.ensure(rowHeight, section.Title) {
			r.tableHeader(ExtraHeaders, extraColWidths)
		}
		r.tableRow(row, extraColWidths, i)
	}
}

func (r *report) renderSummary(result model.PlanResult) {
	const title = "Cut Plan Summary"
	r.newPage(title)
	pdf := r.pdf

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, r.y, pageWidth-marginRight, r.y)
	r.y += 4

	r.text("B", 12, "Overall Statistics")
	cuts := 0
	for _, mp := range result.Materials {
		cuts += mp.CutCount()
	}
	items := []keyValue{
		{"Run", result.RunID},
		{"Created", result.CreatedAt.Format("2006-01-02 15:04:05 MST")},
		{"Total Bars Used", fmt.Sprintf("%d", result.TotalBars())},
		{"Total Cuts", fmt.Sprintf("%d", cuts)},
		{"KANBAN Items", fmt.Sprintf("%d", len(result.Kanban))},
		{"Non-Cuttable Items", fmt.Sprintf("%d", len(result.NonCuttable))},
		{"Skipped Records", fmt.Sprintf("%d", len(result.Skipped))},
	}
	r.keyValues(items)
	r.y += 4

	if len(result.Materials) > 0 {
		r.ensure(rowHeight*3, title)
		r.text("B", 12, "Material Breakdown")
		r.tableHeader(summaryHeaders, summaryColWidths)
		for i, mp := range result.Materials {
			if r.ensure(rowHeight, title) {
				r.tableHeader(summaryHeaders, summaryColWidths)
			}
			r.tableRow(summarize(mp).strings(), summaryColWidths, i)
		}
		r.y += 4
	}

	offcuts := model.DetectAllOffcuts(result, result.Settings.MinReusableOffcut)
	if len(offcuts) > 0 {
		r.ensure(rowHeight*3, title)
		r.text("B", 12, fmt.Sprintf("Reusable Offcuts (>= %s)", formatLength(result.Settings.MinReusableOffcut)))
		widths := []float64{80, 30, 40}
		r.tableHeader([]string{"Material", "Bar #", "Length"}, widths)
		for i, o := range offcuts {
			if r.ensure(rowHeight, title) {
				r.tableHeader([]string{"Material", "Bar #", "Length"}, widths)
			}
			r.tableRow([]string{o.Material, fmt.Sprintf("%d", o.BarIndex), formatLength(o.Length)}, widths, i)
		}
		r.y += 4
	}

	s := result.Settings
	r.ensure(6*7, title)
	r.text("B", 12, "Settings")
	exact := "disabled"
	if s.ExactEnabled {
		exact = fmt.Sprintf("up to %d pieces, %s per material", s.ExactMaxItems, s.ExactTimeLimit)
	}
	r.keyValues([]keyValue{
		{"Default Bar Length", formatLength(s.MasterLength)},
		{"Exact Search", exact},
		{"Workers", fmt.Sprintf("%d", s.Workers)},
		{"Min Reusable Offcut", formatLength(s.MinReusableOffcut)},
	})
}

type keyValue struct {
	label string
	value string
}

func (r *report) keyValues(items []keyValue) {
	pdf := r.pdf
	for _, item := range items {
		r.ensure(7, "Cut Plan Summary")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft+5, r.y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		r.y += 7
	}
}
