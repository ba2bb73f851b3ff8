package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/leilaShen/BoxStack/internal/model"
)

// containerGap is the spacing between container outlines in the DXF output
// when a result spans multiple containers.
const containerGap = 200.0

// ExportDXF writes a 3D wireframe drawing of a packing result. Each
// container outline goes on its own layer with its placed boxes on a
// matching BOXES layer; containers are laid out side by side along the x
// axis. The drawing can be inspected in any CAD viewer that reads DXF.
func ExportDXF(path string, result model.PackResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to export")
	}

	d := dxf.NewDrawing()

	offsetX := 0.0
	for i, cr := range result.Containers {
		containerLayer := fmt.Sprintf("CONTAINER_%d", i+1)
		boxLayer := fmt.Sprintf("BOXES_%d", i+1)

		if _, err := d.AddLayer(containerLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", containerLayer, err)
		}
		outline := model.Box{
			Width: cr.Container.Width, Height: cr.Container.Height, Depth: cr.Container.Depth,
		}
		if err := drawWireframe(d, outline, offsetX); err != nil {
			return err
		}

		if _, err := d.AddLayer(boxLayer, color.Red, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", boxLayer, err)
		}
		for _, p := range cr.Placements {
			if err := drawWireframe(d, p.Box, offsetX); err != nil {
				return err
			}
		}

		offsetX += float64(cr.Container.Width) + containerGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF file: %w", err)
	}
	return nil
}

// drawWireframe draws the 12 edges of a box, shifted along x by offsetX.
func drawWireframe(d *drawing.Drawing, b model.Box, offsetX float64) error {
	x0 := offsetX + float64(b.X)
	y0 := float64(b.Y)
	z0 := float64(b.Z)
	x1 := x0 + float64(b.Width)
	y1 := y0 + float64(b.Height)
	z1 := z0 + float64(b.Depth)

	edges := [][6]float64{
		// Bottom face
		{x0, y0, z0, x1, y0, z0},
		{x1, y0, z0, x1, y1, z0},
		{x1, y1, z0, x0, y1, z0},
		{x0, y1, z0, x0, y0, z0},
		// Top face
		{x0, y0, z1, x1, y0, z1},
		{x1, y0, z1, x1, y1, z1},
		{x1, y1, z1, x0, y1, z1},
		{x0, y1, z1, x0, y0, z1},
		// Vertical edges
		{x0, y0, z0, x0, y0, z1},
		{x1, y0, z0, x1, y0, z1},
		{x1, y1, z0, x1, y1, z1},
		{x0, y1, z0, x0, y1, z1},
	}

	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], e[2], e[3], e[4], e[5]); err != nil {
			return fmt.Errorf("failed to draw edge: %w", err)
		}
	}
	return nil
}
