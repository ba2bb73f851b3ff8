package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leilaShen/BoxStack/internal/model"
)

func TestExportPDF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.pdf")

	require.NoError(t, ExportPDF(path, sampleResult()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportPDF_NoContainers(t *testing.T) {
	err := ExportPDF(filepath.Join(t.TempDir(), "result.pdf"), model.PackResult{})
	assert.Error(t, err)
}

func TestFloorLevels(t *testing.T) {
	cr := model.ContainerResult{
		Placements: []model.Placement{
			{Box: model.Box{Z: 210, Width: 1, Height: 1, Depth: 1}},
			{Box: model.Box{Z: 0, Width: 1, Height: 1, Depth: 1}},
			{Box: model.Box{Z: 0, Width: 1, Height: 1, Depth: 1}},
			{Box: model.Box{Z: 420, Width: 1, Height: 1, Depth: 1}},
		},
	}

	assert.Equal(t, []int{0, 210, 420}, floorLevels(cr))
}

func TestFloorLevels_EmptyContainerStillHasFloor(t *testing.T) {
	assert.Equal(t, []int{0}, floorLevels(model.ContainerResult{}))
}

func TestLayerPlacements(t *testing.T) {
	cr := model.ContainerResult{
		Placements: []model.Placement{
			{Box: model.Box{Z: 0, Width: 10, Height: 10, Depth: 210}},
			{Box: model.Box{Z: 210, Width: 10, Height: 10, Depth: 210}},
			{Box: model.Box{X: 10, Z: 0, Width: 10, Height: 10, Depth: 210}},
		},
	}

	assert.Len(t, layerPlacements(cr, 0), 2)
	assert.Len(t, layerPlacements(cr, 210), 1)
	assert.Empty(t, layerPlacements(cr, 50))
}

func TestExportExcel_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.xlsx")
	result := sampleResult()

	require.NoError(t, ExportExcel(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Placements", "Unplaced"}, f.GetSheetList())

	rows, err := f.GetRows("Placements")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per placement")
	assert.Equal(t, "Carton A", rows[1][1])

	unplaced, err := f.GetRows("Unplaced")
	require.NoError(t, err)
	require.Len(t, unplaced, 2)
	assert.Equal(t, "Oversize", unplaced[1][0])
}

func TestExportExcel_NoContainers(t *testing.T) {
	err := ExportExcel(filepath.Join(t.TempDir(), "result.xlsx"), model.PackResult{})
	assert.Error(t, err)
}

func TestExportDXF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.dxf")

	require.NoError(t, ExportDXF(path, sampleResult()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportDXF_NoContainers(t *testing.T) {
	err := ExportDXF(filepath.Join(t.TempDir(), "result.dxf"), model.PackResult{})
	assert.Error(t, err)
}

func TestLabelFontSize(t *testing.T) {
	assert.InDelta(t, 8.0, labelFontSize(50, 45), 1e-9)
	assert.InDelta(t, 7.0, labelFontSize(50, 25), 1e-9)
	assert.InDelta(t, 6.0, labelFontSize(50, 10), 1e-9)
}
