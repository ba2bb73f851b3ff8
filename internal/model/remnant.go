package model

import (
	"sort"

	"github.com/google/uuid"
)

// Remnant represents a usable empty sub-volume left over after packing.
type Remnant struct {
	ID             string  `json:"id"`
	ContainerLabel string  `json:"container_label"` // Which container it is inside
	ContainerIndex int     `json:"container_index"` // Index of the container in the result
	Region         Box     `json:"region"`          // Position and extents inside the container
	PriceShare     float64 `json:"price_share"`     // Container price proportional to volume (0 if not set)
}

// Volume returns the remnant's volume.
func (r Remnant) Volume() int {
	return r.Region.Volume()
}

// ToContainer converts a floor-level remnant into a container for reuse in
// future packing runs. Only remnants resting on the container floor make
// sense as standalone volumes.
func (r Remnant) ToContainer() Container {
	label := "Remnant " + r.ContainerLabel
	c := NewContainer(label, r.Region.Width, r.Region.Height, r.Region.Depth, 1)
	c.ID = uuid.New().String()[:8]
	c.PriceEach = r.PriceShare
	return c
}

// MinRemnantDimension is the minimum extent (in mm) on every axis for a free
// region to be considered a usable remnant. Smaller regions are waste.
const MinRemnantDimension = 100

// MinRemnantVolume is the minimum volume (in cubic mm) for a free region to
// be considered usable.
const MinRemnantVolume = 8_000_000 // 200x200x200 equivalent

// DetectRemnants filters a packer's leftover free regions down to the ones
// large enough to be worth reusing, largest first. The caller supplies the
// regions (e.g. Guillotine.FreeRegions after a run).
func DetectRemnants(regions []Box, cr ContainerResult, containerIndex int) []Remnant {
	containerVolume := cr.Container.Volume()

	var remnants []Remnant
	for _, region := range regions {
		if region.Width < MinRemnantDimension ||
			region.Height < MinRemnantDimension ||
			region.Depth < MinRemnantDimension {
			continue
		}
		if region.Volume() < MinRemnantVolume {
			continue
		}

		var share float64
		if cr.Container.PriceEach > 0 && containerVolume > 0 {
			share = cr.Container.PriceEach * float64(region.Volume()) / float64(containerVolume)
		}

		remnants = append(remnants, Remnant{
			ID:             uuid.New().String()[:8],
			ContainerLabel: cr.Container.Label,
			ContainerIndex: containerIndex,
			Region:         region,
			PriceShare:     share,
		})
	}

	sort.Slice(remnants, func(i, j int) bool {
		return remnants[i].Volume() > remnants[j].Volume()
	})
	return remnants
}
