package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/leilaShen/BoxStack/internal/model"
)

// LabelInfo holds the data encoded into each box label's QR code.
type LabelInfo struct {
	BoxLabel       string `json:"label"`
	Width          int    `json:"width_mm"`
	Height         int    `json:"height_mm"`
	Depth          int    `json:"depth_mm"`
	ContainerIndex int    `json:"container"`
	ContainerLabel string `json:"container_label"`
	Flipped        bool   `json:"flipped"`
	X              int    `json:"x_mm"`
	Y              int    `json:"y_mm"`
	Z              int    `json:"z_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for all placed boxes.
// Each label contains the box name, dimensions, its container and position,
// and a QR code encoding the same metadata as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, result model.PackResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no boxes placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.BoxLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s_%d_%d_%d_%d", info.BoxLabel, info.ContainerIndex, info.X, info.Y, info.Z)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Box label (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	boxLabel := info.BoxLabel
	if pdf.GetStringWidth(boxLabel) > textW {
		for len(boxLabel) > 0 && pdf.GetStringWidth(boxLabel+"...") > textW {
			boxLabel = boxLabel[:len(boxLabel)-1]
		}
		boxLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, boxLabel, "", 1, "L", false, 0, "")

	// Dimensions
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%d x %d x %d mm", info.Width, info.Height, info.Depth)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Container and position info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	posInfo := fmt.Sprintf("Container %d @ (%d, %d, %d)", info.ContainerIndex, info.X, info.Y, info.Z)
	pdf.CellFormat(textW, 3, posInfo, "", 1, "L", false, 0, "")

	// Flip indicator
	if info.Flipped {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a packing result for use
// in testing or alternative export formats.
func CollectLabelInfos(result model.PackResult) []LabelInfo {
	var labels []LabelInfo
	for containerIdx, cr := range result.Containers {
		for _, p := range cr.Placements {
			labels = append(labels, LabelInfo{
				BoxLabel:       p.Request.Label,
				Width:          p.Box.Width,
				Height:         p.Box.Height,
				Depth:          p.Box.Depth,
				ContainerIndex: containerIdx + 1,
				ContainerLabel: cr.Container.Label,
				Flipped:        p.Flipped,
				X:              p.Box.X,
				Y:              p.Box.Y,
				Z:              p.Box.Z,
			})
		}
	}
	return labels
}
