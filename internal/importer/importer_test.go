package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectCSVDelimiter(t *testing.T) {
	cases := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "label,width,height,depth\nA,100,200,50\n", ','},
		{"semicolon", "label;width;height;depth\nA;100;200;50\n", ';'},
		{"tab", "label\twidth\theight\tdepth\nA\t100\t200\t50\n", '\t'},
		{"pipe", "label|width|height|depth\nA|100|200|50\n", '|'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectCSVDelimiter([]byte(tc.data)))
		})
	}
}

func TestDetectColumns_HeaderAliases(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Name", "W", "H", "D", "Qty"})

	require.True(t, isHeader)
	assert.Equal(t, 0, mapping.Label)
	assert.Equal(t, 1, mapping.Width)
	assert.Equal(t, 2, mapping.Height)
	assert.Equal(t, 3, mapping.Depth)
	assert.Equal(t, 4, mapping.Quantity)
}

func TestDetectColumns_ReorderedHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"qty", "depth", "width", "height", "label"})

	require.True(t, isHeader)
	assert.Equal(t, 4, mapping.Label)
	assert.Equal(t, 2, mapping.Width)
	assert.Equal(t, 3, mapping.Height)
	assert.Equal(t, 1, mapping.Depth)
	assert.Equal(t, 0, mapping.Quantity)
}

func TestDetectColumns_NoHeaderFallsBackToPositional(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Carton A", "510", "290", "210", "12"})

	assert.False(t, isHeader)
	assert.Equal(t, ColumnMapping{Label: 0, Width: 1, Height: 2, Depth: 3, Quantity: 4}, mapping)
}

func TestImportCSVFromReader_BasicImport(t *testing.T) {
	csvData := `label,width,height,depth,qty
Carton A,510,290,210,12
Carton B,480,230,190,10
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Boxes, 2)
	assert.Equal(t, "Carton A", result.Boxes[0].Label)
	assert.Equal(t, 510, result.Boxes[0].Width)
	assert.Equal(t, 290, result.Boxes[0].Height)
	assert.Equal(t, 210, result.Boxes[0].Depth)
	assert.Equal(t, 12, result.Boxes[0].Quantity)
	assert.Equal(t, 10, result.Boxes[1].Quantity)
}

func TestImportCSVFromReader_MissingQuantityWarnsAndDefaults(t *testing.T) {
	csvData := `label,width,height,depth
Carton,510,290,210
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Boxes, 1)
	assert.Equal(t, 1, result.Boxes[0].Quantity)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "defaulting to 1") {
			found = true
		}
	}
	assert.True(t, found, "expected a default-quantity warning, got %v", result.Warnings)
}

func TestImportCSVFromReader_FractionalDimensionsRounded(t *testing.T) {
	csvData := `label,width,height,depth,qty
Carton,510.4,289.6,210.0,2
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Boxes, 1)
	assert.Equal(t, 510, result.Boxes[0].Width)
	assert.Equal(t, 290, result.Boxes[0].Height)
	assert.Equal(t, 210, result.Boxes[0].Depth)
}

func TestImportCSVFromReader_BadRowsReportedAndSkipped(t *testing.T) {
	csvData := `label,width,height,depth,qty
Good,100,200,50,1
NoWidth,,200,50,1
BadHeight,100,abc,50,1
Negative,100,200,-5,1
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	require.Len(t, result.Boxes, 1)
	assert.Equal(t, "Good", result.Boxes[0].Label)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "Missing width")
	assert.Contains(t, result.Errors[1], "Invalid height")
	assert.Contains(t, result.Errors[2], "must be positive")
}

func TestImportCSVFromReader_BlankRowsSkipped(t *testing.T) {
	csvData := `label,width,height,depth,qty
A,100,200,50,1

B,100,200,50,2
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	require.Empty(t, result.Errors)
	assert.Len(t, result.Boxes, 2)
}

func TestImportCSVFromReader_MissingLabelGetsGenerated(t *testing.T) {
	csvData := `label,width,height,depth,qty
,100,200,50,1
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	require.Len(t, result.Boxes, 1)
	assert.Equal(t, "Box 1", result.Boxes[0].Label)
}

func TestImportCSVFromReader_HeaderMissingDepthColumn(t *testing.T) {
	csvData := `label,width,height,qty
Carton,510,290,12
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Depth")
	assert.Empty(t, result.Boxes)
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxes.csv")
	data := "label;width;height;depth;qty\nCarton;510;290;210;4\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	result := ImportCSV(path)

	require.Empty(t, result.Errors)
	require.Len(t, result.Boxes, 1)
	assert.Equal(t, 4, result.Boxes[0].Quantity)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	assert.True(t, found, "expected a delimiter warning, got %v", result.Warnings)
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	result := ImportCSV(path)

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "empty")
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Cannot open file")
}

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxes.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Label", "Width", "Height", "Depth", "Quantity"},
		{"Carton A", 510, 290, 210, 12},
		{"Carton B", 480, 230, 190, 10},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result := ImportExcel(path)

	require.Empty(t, result.Errors)
	require.Len(t, result.Boxes, 2)
	assert.Equal(t, "Carton A", result.Boxes[0].Label)
	assert.Equal(t, 510, result.Boxes[0].Width)
	assert.Equal(t, 10, result.Boxes[1].Quantity)
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Cannot open Excel file")
}
