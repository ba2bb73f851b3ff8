package model

import "math"

// PurchaseEstimate holds the results of a container purchasing calculation.
type PurchaseEstimate struct {
	TotalBoxVolume        int     `json:"total_box_volume"`        // Total volume of all requested boxes (cubic mm)
	ContainerVolume       int     `json:"container_volume"`        // Interior volume of one container (cubic mm)
	ContainersNeededExact float64 `json:"containers_needed_exact"` // Exact fractional number of containers
	ContainersNeededMin   int     `json:"containers_needed_min"`   // Minimum containers (ceiling of exact)
	ContainersWithWaste   int     `json:"containers_with_waste"`   // Recommended containers including waste factor
	WastePercent          float64 `json:"waste_percent"`           // Waste factor applied (e.g., 25 for 25%)
	EstimatedCost         float64 `json:"estimated_cost"`          // Total cost if pricing available
	PriceEach             float64 `json:"price_each"`              // Price used for estimation
}

// CalculatePurchaseEstimate computes how many containers to provision for a
// given box list. A volume-based lower bound is optimistic since packing
// never reaches 100% fill, so callers should pass a waste factor reflecting
// the expected packing efficiency of their box mix.
func CalculatePurchaseEstimate(boxes []BoxRequest, container Container, wastePercent, priceEach float64) PurchaseEstimate {
	totalBoxVolume := 0
	for _, b := range boxes {
		totalBoxVolume += b.Volume() * b.Quantity
	}

	containerVolume := container.Volume()
	if containerVolume <= 0 {
		return PurchaseEstimate{
			TotalBoxVolume: totalBoxVolume,
			WastePercent:   wastePercent,
		}
	}

	exact := float64(totalBoxVolume) / float64(containerVolume)
	minContainers := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minContainers {
		withWaste = minContainers
	}

	return PurchaseEstimate{
		TotalBoxVolume:        totalBoxVolume,
		ContainerVolume:       containerVolume,
		ContainersNeededExact: exact,
		ContainersNeededMin:   minContainers,
		ContainersWithWaste:   withWaste,
		WastePercent:          wastePercent,
		EstimatedCost:         float64(withWaste) * priceEach,
		PriceEach:             priceEach,
	}
}
