package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leilaShen/BoxStack/internal/model"
)

func sampleResult() model.PackResult {
	container := model.NewContainer("Pallet cage", 1500, 1500, 800, 1)
	reqA := model.NewBoxRequest("Carton A", 510, 290, 210, 2)
	reqB := model.NewBoxRequest("Carton B", 480, 230, 190, 1)

	return model.PackResult{
		Containers: []model.ContainerResult{{
			Container: container,
			Placements: []model.Placement{
				{Request: reqA, Box: model.Box{X: 0, Y: 0, Z: 0, Width: 510, Height: 290, Depth: 210}},
				{Request: reqA, Box: model.Box{X: 510, Y: 0, Z: 0, Width: 510, Height: 290, Depth: 210}},
				{Request: reqB, Box: model.Box{X: 0, Y: 290, Z: 0, Width: 230, Height: 480, Depth: 190}, Flipped: true},
			},
			FreeRegions: []model.Box{{X: 1020, Y: 0, Z: 0, Width: 480, Height: 1500, Depth: 800}},
		}},
		Unplaced: []model.BoxRequest{model.NewBoxRequest("Oversize", 2000, 2000, 900, 1)},
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(sampleResult())

	require.Len(t, labels, 3)
	assert.Equal(t, "Carton A", labels[0].BoxLabel)
	assert.Equal(t, 1, labels[0].ContainerIndex)
	assert.Equal(t, "Pallet cage", labels[0].ContainerLabel)
	assert.Equal(t, 510, labels[1].X)
	assert.True(t, labels[2].Flipped)
	assert.Equal(t, 230, labels[2].Width, "label carries placed extents, not requested ones")
}

func TestCollectLabelInfos_EmptyResult(t *testing.T) {
	assert.Empty(t, CollectLabelInfos(model.PackResult{}))
}

func TestExportLabels_WritesPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, sampleResult()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportLabels_NothingPlaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	err := ExportLabels(path, model.PackResult{})

	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
