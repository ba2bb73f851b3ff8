// Package export provides functionality for exporting packing results to
// various file formats.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/leilaShen/BoxStack/internal/model"
)

// boxColor represents an RGB color for a placed box.
type boxColor struct {
	R, G, B int
}

var boxColors = []boxColor{
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
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a packing result. Each container is
// rendered as a sequence of top-down layer diagrams, one page per distinct
// floor level, followed by a summary page with overall statistics.
func ExportPDF(path string, result model.PackResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, cr := range result.Containers {
		for _, level := range floorLevels(cr) {
			pdf.AddPage()
			renderLayerPage(pdf, cr, i+1, level)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// floorLevels returns the distinct z floors of a container's placements,
// ascending. An empty container still gets its floor level so the page
// shows the empty outline.
func floorLevels(cr model.ContainerResult) []int {
	seen := map[int]bool{}
	var levels []int
	for _, p := range cr.Placements {
		if !seen[p.Box.Z] {
			seen[p.Box.Z] = true
			levels = append(levels, p.Box.Z)
		}
	}
	if len(levels) == 0 {
		levels = append(levels, 0)
	}
	sort.Ints(levels)
	return levels
}

// renderLayerPage draws a top-down view of one floor level of a container.
func renderLayerPage(pdf *fpdf.Fpdf, cr model.ContainerResult, containerNum, level int) {
	layer := layerPlacements(cr, level)

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %d: %s (%d x %d x %d mm), layer at z=%d",
		containerNum, cr.Container.Label, cr.Container.Width, cr.Container.Height, cr.Container.Depth, level)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes on layer: %d | Boxes in container: %d | Volume efficiency: %.1f%% | Floor efficiency: %.1f%%",
		len(layer), len(cr.Placements), cr.VolumeEfficiency(), cr.FloorEfficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area and scale
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scaleX := drawWidth / float64(cr.Container.Width)
	scaleY := drawHeight / float64(cr.Container.Height)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(cr.Container.Width) * scale
	canvasH := float64(cr.Container.Height) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Container floor background
	pdf.SetFillColor(225, 225, 215)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Boxes on this layer
	for i, p := range layer {
		col := boxColors[i%len(boxColors)]
		bw := float64(p.Box.Width) * scale
		bh := float64(p.Box.Height) * scale
		bx := offsetX + float64(p.Box.X)*scale
		by := offsetY + float64(p.Box.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bh, "FD")

		if bw > 15 && bh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(bw, bh))
			pdf.SetTextColor(0, 0, 0)

			label := p.Request.Label
			dims := fmt.Sprintf("%dx%dx%d", p.Box.Width, p.Box.Height, p.Box.Depth)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < bw-2 {
				pdf.SetXY(bx+(bw-labelW)/2, by+bh/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if bh > 14 && dimsW < bw-2 {
				pdf.SetXY(bx+(bw-dimsW)/2, by+bh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, cr.Container, scale, offsetX, offsetY, canvasW, canvasH)
	drawLayerLegend(pdf, layer, offsetY+canvasH+5)
}

// layerPlacements returns the placements resting at the given floor z.
func layerPlacements(cr model.ContainerResult, level int) []model.Placement {
	var out []model.Placement
	for _, p := range cr.Placements {
		if p.Box.Z == level {
			out = append(out, p)
		}
	}
	return out
}

// drawDimensionAnnotations adds width and height labels outside the floor rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, c model.Container, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the floor)
	widthLabel := fmt.Sprintf("%d mm", c.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left, rotated)
	heightLabel := fmt.Sprintf("%d mm", c.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLayerLegend renders a compact legend of the layer's boxes.
func drawLayerLegend(pdf *fpdf.Fpdf, layer []model.Placement, startY float64) {
	if len(layer) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Boxes placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range layer {
		col := boxColors[i%len(boxColors)]
		label := fmt.Sprintf("%s (%dx%dx%d)", p.Request.Label, p.Box.Width, p.Box.Height, p.Box.Depth)
		if p.Flipped {
			label += " F"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Containers Used", fmt.Sprintf("%d", len(result.Containers))},
		{"Overall Volume Efficiency", fmt.Sprintf("%.1f%%", result.TotalVolumeEfficiency())},
		{"Total Boxes Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Unplaced Boxes", fmt.Sprintf("%d", len(result.Unplaced))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Container Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 60, 55, 30, 45, 50}
	headers := []string{"Container", "Label", "Dimensions", "Boxes", "Volume Eff.", "Used / Total Volume"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, cr := range result.Containers {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			cr.Container.Label,
			fmt.Sprintf("%d x %d x %d mm", cr.Container.Width, cr.Container.Height, cr.Container.Depth),
			fmt.Sprintf("%d", len(cr.Placements)),
			fmt.Sprintf("%.1f%%", cr.VolumeEfficiency()),
			fmt.Sprintf("%.2e / %.2e mm³", float64(cr.UsedVolume()), float64(cr.Container.Volume())),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Boxes", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, req := range result.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %d x %d x %d mm", req.Label, req.Width, req.Height, req.Depth)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoxStack - 3D Container Packing Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
