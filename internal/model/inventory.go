package model

import "github.com/google/uuid"

// ContainerPreset represents a reusable container definition.
type ContainerPreset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Depth     int     `json:"depth"`
	Material  string  `json:"material"`
	PriceEach float64 `json:"price_each,omitempty"`
}

// NewContainerPreset creates a new ContainerPreset with a generated ID.
func NewContainerPreset(name string, width, height, depth int, material string) ContainerPreset {
	return ContainerPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    width,
		Height:   height,
		Depth:    depth,
		Material: material,
	}
}

// ToContainer converts a ContainerPreset into a Container with the given
// quantity.
func (cp ContainerPreset) ToContainer(qty int) Container {
	c := NewContainer(cp.Name, cp.Width, cp.Height, cp.Depth, qty)
	c.PriceEach = cp.PriceEach
	return c
}

// Inventory holds the user's saved container presets.
type Inventory struct {
	Containers []ContainerPreset `json:"containers"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Containers: []ContainerPreset{
			NewContainerPreset("Pallet cage 1500x1500x800", 1500, 1500, 800, "Steel mesh"),
			NewContainerPreset("EUR pallet box 1200x800x600", 1200, 800, 600, "Wood"),
			NewContainerPreset("Half pallet box 800x600x600", 800, 600, 600, "Wood"),
			NewContainerPreset("Tote 600x400x300", 600, 400, 300, "Plastic"),
			NewContainerPreset("Tote 400x300x200", 400, 300, 200, "Plastic"),
		},
	}
}

// FindContainerByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindContainerByID(id string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].ID == id {
			return &inv.Containers[i]
		}
	}
	return nil
}

// FindContainerByName returns a pointer to the first preset with the given
// name, or nil.
func (inv *Inventory) FindContainerByName(name string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].Name == name {
			return &inv.Containers[i]
		}
	}
	return nil
}

// ContainerNames returns the preset names in inventory order.
func (inv *Inventory) ContainerNames() []string {
	names := make([]string, len(inv.Containers))
	for i, c := range inv.Containers {
		names[i] = c.Name
	}
	return names
}
