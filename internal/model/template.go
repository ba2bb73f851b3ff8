package model

import (
	"time"

	"github.com/google/uuid"
)

// ManifestTemplate represents a reusable manifest configuration that captures
// box requests, containers, and settings but not packing results.
type ManifestTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Boxes       []BoxRequest `json:"boxes"`
	Containers  []Container  `json:"containers"`
	Settings    PackSettings `json:"settings"`
}

// NewManifestTemplate creates a new template from the given manifest data.
// It copies boxes, containers, and settings but intentionally excludes
// results.
func NewManifestTemplate(name, description string, boxes []BoxRequest, containers []Container, settings PackSettings) ManifestTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ManifestTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Boxes:       copyBoxes(boxes),
		Containers:  copyContainers(containers),
		Settings:    settings,
	}
}

// ToManifest creates a new Manifest from this template. Boxes and containers
// get fresh IDs so they are independent of the template.
func (t ManifestTemplate) ToManifest(name string) Manifest {
	boxes := make([]BoxRequest, len(t.Boxes))
	for i, b := range t.Boxes {
		boxes[i] = NewBoxRequest(b.Label, b.Width, b.Height, b.Depth, b.Quantity)
	}

	containers := make([]Container, len(t.Containers))
	for i, c := range t.Containers {
		containers[i] = NewContainer(c.Label, c.Width, c.Height, c.Depth, c.Quantity)
		containers[i].PriceEach = c.PriceEach
	}

	return Manifest{
		Name:       name,
		Boxes:      boxes,
		Containers: containers,
		Settings:   t.Settings,
	}
}

// TemplateStore holds a collection of manifest templates.
type TemplateStore struct {
	Templates []ManifestTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ManifestTemplate{},
	}
}

// Add appends a template to the store.
func (ts *TemplateStore) Add(t ManifestTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove deletes the template with the given ID. Returns true if found.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ManifestTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name,
// or nil.
func (ts *TemplateStore) FindByName(name string) *ManifestTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyBoxes(boxes []BoxRequest) []BoxRequest {
	out := make([]BoxRequest, len(boxes))
	copy(out, boxes)
	return out
}

func copyContainers(containers []Container) []Container {
	out := make([]Container, len(containers))
	copy(out, containers)
	return out
}
