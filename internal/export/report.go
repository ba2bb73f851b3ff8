package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/leilaShen/BoxStack/internal/model"
)

// ExportExcel writes a packing result as an Excel workbook with three
// sheets: Summary (per-container statistics), Placements (one row per
// placed box) and Unplaced (boxes that did not fit).
func ExportExcel(path string, result model.PackResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, result); err != nil {
		return err
	}
	if err := writePlacementsSheet(f, result); err != nil {
		return err
	}
	if err := writeUnplacedSheet(f, result); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, result model.PackResult) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Container", "Label", "Width (mm)", "Height (mm)", "Depth (mm)",
		"Boxes", "Used Volume (mm3)", "Volume Eff. (%)", "Floor Eff. (%)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, cr := range result.Containers {
		row := i + 2
		values := []interface{}{
			i + 1,
			cr.Container.Label,
			cr.Container.Width,
			cr.Container.Height,
			cr.Container.Depth,
			len(cr.Placements),
			cr.UsedVolume(),
			cr.VolumeEfficiency(),
			cr.FloorEfficiency(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	totalsRow := len(result.Containers) + 3
	cell, _ := excelize.CoordinatesToCellName(1, totalsRow)
	if err := f.SetCellValue(sheet, cell, "Overall volume efficiency (%)"); err != nil {
		return err
	}
	cell, _ = excelize.CoordinatesToCellName(2, totalsRow)
	if err := f.SetCellValue(sheet, cell, result.TotalVolumeEfficiency()); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "I", 16); err != nil {
		return err
	}
	return nil
}

func writePlacementsSheet(f *excelize.File, result model.PackResult) error {
	const sheet = "Placements"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{"Container", "Box", "X (mm)", "Y (mm)", "Z (mm)",
		"Width (mm)", "Height (mm)", "Depth (mm)", "Flipped"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for containerIdx, cr := range result.Containers {
		for _, p := range cr.Placements {
			values := []interface{}{
				containerIdx + 1,
				p.Request.Label,
				p.Box.X,
				p.Box.Y,
				p.Box.Z,
				p.Box.Width,
				p.Box.Height,
				p.Box.Depth,
				p.Flipped,
			}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "A", "I", 14); err != nil {
		return err
	}
	return nil
}

func writeUnplacedSheet(f *excelize.File, result model.PackResult) error {
	const sheet = "Unplaced"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{"Box", "Width (mm)", "Height (mm)", "Depth (mm)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, req := range result.Unplaced {
		row := i + 2
		values := []interface{}{req.Label, req.Width, req.Height, req.Depth}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "D", 14); err != nil {
		return err
	}
	return nil
}
