package project

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/leilaShen/BoxStack/internal/model"
)

// Scenario files describe a packing run in TOML: the container pool, the box
// mix and optional engine settings. They are the hand-editable counterpart
// to the JSON manifest format and drive the CLI's pack command.

// scTomlScenario is the TOML-friendly representation of a scenario.
type scTomlScenario struct {
	Name       string           `toml:"name"`
	Engine     string           `toml:"engine,omitempty"`
	FitRule    string           `toml:"fit_rule,omitempty"`
	SplitRule  string           `toml:"split_rule,omitempty"`
	Merge      *bool            `toml:"merge,omitempty"`
	AllowFlip  *bool            `toml:"allow_flip,omitempty"`
	SupportTh  float64          `toml:"support_threshold,omitempty"`
	Verify     bool             `toml:"verify,omitempty"`
	Containers []scTomlContainer `toml:"container"`
	Boxes      []scTomlBox      `toml:"box"`
}

type scTomlContainer struct {
	Label     string  `toml:"label"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Depth     int     `toml:"depth"`
	Quantity  int     `toml:"quantity,omitempty"`
	PriceEach float64 `toml:"price_each,omitempty"`
}

type scTomlBox struct {
	Label    string `toml:"label"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Depth    int    `toml:"depth"`
	Quantity int    `toml:"quantity,omitempty"`
}

// LoadScenario reads a TOML scenario file and converts it into a manifest.
// Settings not present in the file keep their defaults.
func LoadScenario(path string) (model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Manifest{}, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario converts TOML scenario data into a manifest.
func ParseScenario(data []byte) (model.Manifest, error) {
	var raw scTomlScenario
	if err := toml.Unmarshal(data, &raw); err != nil {
		return model.Manifest{}, fmt.Errorf("scenario: parse TOML: %w", err)
	}
	if len(raw.Containers) == 0 {
		return model.Manifest{}, fmt.Errorf("scenario: at least one [[container]] is required")
	}
	if len(raw.Boxes) == 0 {
		return model.Manifest{}, fmt.Errorf("scenario: at least one [[box]] is required")
	}

	m := model.NewManifest()
	if raw.Name != "" {
		m.Name = raw.Name
	}

	if raw.Engine != "" {
		m.Settings.Engine = model.Engine(raw.Engine)
	}
	if raw.FitRule != "" {
		m.Settings.FitRule = model.FitRule(raw.FitRule)
	}
	if raw.SplitRule != "" {
		m.Settings.SplitRule = model.SplitRule(raw.SplitRule)
	}
	if raw.Merge != nil {
		m.Settings.Merge = *raw.Merge
	}
	if raw.AllowFlip != nil {
		m.Settings.AllowFlip = *raw.AllowFlip
	}
	if raw.SupportTh > 0 {
		m.Settings.SupportThreshold = raw.SupportTh
	}
	m.Settings.Verify = raw.Verify

	for i, c := range raw.Containers {
		if c.Width <= 0 || c.Height <= 0 || c.Depth <= 0 {
			return model.Manifest{}, fmt.Errorf("scenario: container %d has non-positive dimensions", i+1)
		}
		qty := c.Quantity
		if qty < 1 {
			qty = 1
		}
		container := model.NewContainer(c.Label, c.Width, c.Height, c.Depth, qty)
		container.PriceEach = c.PriceEach
		m.Containers = append(m.Containers, container)
	}

	for i, b := range raw.Boxes {
		if b.Width <= 0 || b.Height <= 0 || b.Depth <= 0 {
			return model.Manifest{}, fmt.Errorf("scenario: box %d has non-positive dimensions", i+1)
		}
		qty := b.Quantity
		if qty < 1 {
			qty = 1
		}
		m.Boxes = append(m.Boxes, model.NewBoxRequest(b.Label, b.Width, b.Height, b.Depth, qty))
	}

	return m, nil
}

// SaveScenario serializes a manifest's inputs to a TOML scenario file.
// Results are never written; scenarios describe inputs only.
func SaveScenario(path string, m model.Manifest) error {
	raw := scTomlScenario{
		Name:      m.Name,
		Engine:    string(m.Settings.Engine),
		FitRule:   string(m.Settings.FitRule),
		SplitRule: string(m.Settings.SplitRule),
		Merge:     &m.Settings.Merge,
		AllowFlip: &m.Settings.AllowFlip,
		SupportTh: m.Settings.SupportThreshold,
		Verify:    m.Settings.Verify,
	}
	for _, c := range m.Containers {
		raw.Containers = append(raw.Containers, scTomlContainer{
			Label:     c.Label,
			Width:     c.Width,
			Height:    c.Height,
			Depth:     c.Depth,
			Quantity:  c.Quantity,
			PriceEach: c.PriceEach,
		})
	}
	for _, b := range m.Boxes {
		raw.Boxes = append(raw.Boxes, scTomlBox{
			Label:    b.Label,
			Width:    b.Width,
			Height:   b.Height,
			Depth:    b.Depth,
			Quantity: b.Quantity,
		})
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("scenario: encode TOML: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}
	return nil
}
