// BoxStack — 3D container packing optimizer
//
// Packs rectangular boxes into containers using guillotine or support-aware
// maxrects engines, with scenario files, spreadsheet import and PDF/Excel/DXF
// export.
//
// Build:
//   go build -o boxstack ./cmd/boxstack

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leilaShen/BoxStack/internal/engine"
	"github.com/leilaShen/BoxStack/internal/export"
	"github.com/leilaShen/BoxStack/internal/importer"
	"github.com/leilaShen/BoxStack/internal/model"
	"github.com/leilaShen/BoxStack/internal/project"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "pack":
		err = runPack(os.Args[2:])
	case "demo":
		err = runDemo(os.Args[2:])
	case "compare":
		err = runCompare(os.Args[2:])
	case "inventory":
		err = runInventory(os.Args[2:])
	case "estimate":
		err = runEstimate(os.Args[2:])
	case "backup":
		err = runBackup(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`BoxStack — 3D container packing optimizer

Usage:
  boxstack pack -scenario FILE [flags]     pack a TOML scenario
  boxstack pack -boxes FILE [flags]        pack an imported box list
  boxstack demo [flags]                    pack the built-in demo box mix
  boxstack compare -scenario FILE          sweep engines and fit rules
  boxstack estimate -scenario FILE         estimate containers to purchase
  boxstack inventory                       list saved container presets
  boxstack backup -out FILE                export config, inventory and templates

Common flags:
  -engine     guillotine | maxrects | genetic
  -fit        fit rule (BestAreaFit ... WorstLongSideFit)
  -split      split rule (ShorterLeftoverAxis ...)
  -support    support threshold for maxrects (0..1]
  -verify     enable runtime disjointness verification
  -trace      print engine trace to stderr
  -pdf FILE   export layer diagrams as PDF
  -xlsx FILE  export report as Excel workbook
  -dxf FILE   export 3D wireframe as DXF
  -labels F   export QR-coded box labels as PDF
  -save FILE  save the manifest (with result) as JSON
`)
}

// packFlags holds the flag values shared by pack and demo.
type packFlags struct {
	scenario  string
	boxesFile string
	container string
	engine    string
	fit       string
	split     string
	support   float64
	noMerge   bool
	noFlip    bool
	verify    bool
	trace     bool
	pdfOut    string
	xlsxOut   string
	dxfOut    string
	labelsOut string
	saveOut   string
}

func registerPackFlags(fs *flag.FlagSet, pf *packFlags) {
	fs.StringVar(&pf.scenario, "scenario", "", "TOML scenario file")
	fs.StringVar(&pf.boxesFile, "boxes", "", "box list file (.csv, .xlsx)")
	fs.StringVar(&pf.container, "container", "", "container preset name from inventory")
	fs.StringVar(&pf.engine, "engine", "", "packing engine")
	fs.StringVar(&pf.fit, "fit", "", "guillotine fit rule")
	fs.StringVar(&pf.split, "split", "", "guillotine split rule")
	fs.Float64Var(&pf.support, "support", 0, "maxrects support threshold")
	fs.BoolVar(&pf.noMerge, "no-merge", false, "disable guillotine free-list merging")
	fs.BoolVar(&pf.noFlip, "no-flip", false, "disallow width/height flips")
	fs.BoolVar(&pf.verify, "verify", false, "enable runtime disjointness verification")
	fs.BoolVar(&pf.trace, "trace", false, "print engine trace to stderr")
	fs.StringVar(&pf.pdfOut, "pdf", "", "PDF output path")
	fs.StringVar(&pf.xlsxOut, "xlsx", "", "Excel output path")
	fs.StringVar(&pf.dxfOut, "dxf", "", "DXF output path")
	fs.StringVar(&pf.labelsOut, "labels", "", "labels PDF output path")
	fs.StringVar(&pf.saveOut, "save", "", "manifest JSON output path")
}

func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	var pf packFlags
	registerPackFlags(fs, &pf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	manifest, err := loadInputs(pf)
	if err != nil {
		return err
	}
	return packAndReport(manifest, pf)
}

// runDemo packs a representative mixed load into the default pallet cage:
// a dozen large cartons plus ten smaller ones.
func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	var pf packFlags
	registerPackFlags(fs, &pf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	manifest := model.NewManifest()
	manifest.Name = "Demo load"
	manifest.Boxes = []model.BoxRequest{
		model.NewBoxRequest("Carton A", 510, 290, 210, 12),
		model.NewBoxRequest("Carton B", 480, 230, 190, 10),
	}
	manifest.Containers = []model.Container{
		model.NewContainer("Pallet cage", 1500, 1500, 800, 1),
	}
	return packAndReport(manifest, pf)
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	var pf packFlags
	registerPackFlags(fs, &pf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	manifest, err := loadInputs(pf)
	if err != nil {
		return err
	}
	if err := applySettingsFlags(&manifest.Settings, pf); err != nil {
		return err
	}

	results := engine.CompareScenarios(engine.DefaultScenarios(manifest.Settings), manifest.Boxes, manifest.Containers)

	fmt.Printf("%-32s %10s %10s %10s %8s\n", "Scenario", "Placed", "Unplaced", "Containers", "Waste")
	for _, r := range results {
		fmt.Printf("%-32s %10d %10d %10d %7.1f%%\n",
			r.Scenario.Name, r.PlacedCount, r.UnplacedCount, r.ContainersUsed, r.WastePercent)
	}
	return nil
}

func runInventory(args []string) error {
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		return err
	}
	fmt.Printf("Inventory (%s):\n", path)
	for _, c := range inv.Containers {
		fmt.Printf("  %-8s %-36s %4d x %4d x %4d mm  %s\n",
			c.ID, c.Name, c.Width, c.Height, c.Depth, c.Material)
	}
	return nil
}

func runEstimate(args []string) error {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	var pf packFlags
	registerPackFlags(fs, &pf)
	waste := fs.Float64("waste", 25, "waste factor percent applied on top of the volume lower bound")
	if err := fs.Parse(args); err != nil {
		return err
	}

	manifest, err := loadInputs(pf)
	if err != nil {
		return err
	}
	if len(manifest.Containers) == 0 {
		return fmt.Errorf("no containers to estimate against")
	}

	for _, c := range manifest.Containers {
		est := model.CalculatePurchaseEstimate(manifest.Boxes, c, *waste, c.PriceEach)
		fmt.Printf("%s (%dx%dx%d):\n", c.Label, c.Width, c.Height, c.Depth)
		fmt.Printf("  Box volume total:     %d mm3\n", est.TotalBoxVolume)
		fmt.Printf("  Lower bound:          %.2f containers\n", est.ContainersNeededExact)
		fmt.Printf("  Recommended (+%.0f%%):  %d containers\n", est.WastePercent, est.ContainersWithWaste)
		if est.PriceEach > 0 {
			fmt.Printf("  Estimated cost:       %.2f\n", est.EstimatedCost)
		}
	}
	return nil
}

// runBackup writes every piece of persisted application state into a single
// JSON file for transfer to another machine.
func runBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	out := fs.String("out", "", "backup file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("-out is required")
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}
	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		return err
	}
	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		return err
	}

	if err := project.ExportAllData(*out, cfg, inv, templates); err != nil {
		return err
	}
	fmt.Println("Wrote backup to", *out)
	return nil
}

// loadInputs builds a manifest from the scenario file or the box list plus
// container preset flags.
func loadInputs(pf packFlags) (model.Manifest, error) {
	if pf.scenario != "" {
		return project.LoadScenario(pf.scenario)
	}
	if pf.boxesFile == "" {
		return model.Manifest{}, fmt.Errorf("either -scenario or -boxes is required")
	}

	var imported importer.ImportResult
	switch strings.ToLower(filepath.Ext(pf.boxesFile)) {
	case ".xlsx", ".xls":
		imported = importer.ImportExcel(pf.boxesFile)
	default:
		imported = importer.ImportCSV(pf.boxesFile)
	}
	for _, w := range imported.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	if len(imported.Errors) > 0 {
		return model.Manifest{}, fmt.Errorf("import failed: %s", strings.Join(imported.Errors, "; "))
	}

	manifest := model.NewManifest()
	manifest.Name = filepath.Base(pf.boxesFile)
	manifest.Boxes = imported.Boxes

	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		return model.Manifest{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	if pf.container != "" {
		preset := inv.FindContainerByName(pf.container)
		if preset == nil {
			return model.Manifest{}, fmt.Errorf("container preset %q not found in inventory", pf.container)
		}
		manifest.Containers = []model.Container{preset.ToContainer(100)}
	} else {
		for _, preset := range inv.Containers {
			manifest.Containers = append(manifest.Containers, preset.ToContainer(100))
		}
	}
	return manifest, nil
}

// applySettingsFlags overlays CLI flags onto the manifest's settings.
func applySettingsFlags(s *model.PackSettings, pf packFlags) error {
	if pf.engine != "" {
		eng, err := engine.ParseEngine(pf.engine)
		if err != nil {
			return err
		}
		s.Engine = eng
	}
	if pf.fit != "" {
		rule, err := engine.ParseFitRule(pf.fit)
		if err != nil {
			return err
		}
		s.FitRule = rule
	}
	if pf.split != "" {
		rule, err := engine.ParseSplitRule(pf.split)
		if err != nil {
			return err
		}
		s.SplitRule = rule
	}
	if pf.support > 0 {
		if pf.support > 1 {
			return fmt.Errorf("support threshold must be in (0, 1], got %g", pf.support)
		}
		s.SupportThreshold = pf.support
	}
	if pf.noMerge {
		s.Merge = false
	}
	if pf.noFlip {
		s.AllowFlip = false
	}
	if pf.verify {
		s.Verify = true
	}
	return nil
}

func packAndReport(manifest model.Manifest, pf packFlags) error {
	if err := applySettingsFlags(&manifest.Settings, pf); err != nil {
		return err
	}

	opt := engine.New(manifest.Settings)
	if pf.trace {
		opt.Tracer = engine.NewWriterTracer(os.Stderr)
	}
	result := opt.Optimize(manifest.Boxes, manifest.Containers)
	manifest.Result = &result

	printResult(manifest.Name, result)

	if pf.saveOut != "" {
		if err := project.SaveManifest(pf.saveOut, manifest); err != nil {
			return err
		}
		rememberManifest(pf.saveOut)
		fmt.Println("Saved manifest to", pf.saveOut)
	}
	if pf.pdfOut != "" {
		if err := export.ExportPDF(pf.pdfOut, result); err != nil {
			return err
		}
		fmt.Println("Wrote PDF to", pf.pdfOut)
	}
	if pf.xlsxOut != "" {
		if err := export.ExportExcel(pf.xlsxOut, result); err != nil {
			return err
		}
		fmt.Println("Wrote Excel report to", pf.xlsxOut)
	}
	if pf.dxfOut != "" {
		if err := export.ExportDXF(pf.dxfOut, result); err != nil {
			return err
		}
		fmt.Println("Wrote DXF wireframe to", pf.dxfOut)
	}
	if pf.labelsOut != "" {
		if err := export.ExportLabels(pf.labelsOut, result); err != nil {
			return err
		}
		fmt.Println("Wrote labels to", pf.labelsOut)
	}
	return nil
}

// rememberManifest records a saved manifest in the recent-files list. Config
// trouble never fails the save itself.
func rememberManifest(path string) {
	cfgPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	project.AddRecentManifest(&cfg, path)
	if err := project.SaveAppConfig(cfgPath, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "warning: failed to update recent manifests:", err)
	}
}

func printResult(name string, result model.PackResult) {
	fmt.Printf("%s: %d boxes placed in %d containers, %.1f%% volume efficiency\n",
		name, result.PlacedCount(), len(result.Containers), result.TotalVolumeEfficiency())

	for i, cr := range result.Containers {
		fmt.Printf("  Container %d: %s (%dx%dx%d): %d boxes, %.1f%% volume, %.1f%% floor\n",
			i+1, cr.Container.Label, cr.Container.Width, cr.Container.Height, cr.Container.Depth,
			len(cr.Placements), cr.VolumeEfficiency(), cr.FloorEfficiency())
		for _, p := range cr.Placements {
			flip := ""
			if p.Flipped {
				flip = " (flipped)"
			}
			fmt.Printf("    %-16s at (%d,%d,%d) %dx%dx%d%s\n",
				p.Request.Label, p.Box.X, p.Box.Y, p.Box.Z,
				p.Box.Width, p.Box.Height, p.Box.Depth, flip)
		}
	}
	if len(result.Unplaced) > 0 {
		fmt.Printf("  Unplaced: %d\n", len(result.Unplaced))
		for _, req := range result.Unplaced {
			fmt.Printf("    %-16s %dx%dx%d\n", req.Label, req.Width, req.Height, req.Depth)
		}
	}

	for i, cr := range result.Containers {
		remnants := model.DetectRemnants(cr.FreeRegions, cr, i)
		if len(remnants) == 0 {
			continue
		}
		fmt.Printf("  Usable remnants in container %d:\n", i+1)
		for _, r := range remnants {
			fmt.Printf("    %dx%dx%d at (%d,%d,%d)\n",
				r.Region.Width, r.Region.Height, r.Region.Depth,
				r.Region.X, r.Region.Y, r.Region.Z)
		}
	}
}
