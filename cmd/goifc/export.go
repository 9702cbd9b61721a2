package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vipasu/goifc/internal/convert"
	"github.com/vipasu/goifc/pkg/export"
	"github.com/vipasu/goifc/pkg/watcher"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Convert an STL file to an IFC file",
	Long: `Convert an STL file into an IFC4 STEP file. The exporter tries an
extruded profile first, falls back to a faceted BRep for closed shells and
to a face-based surface model for open geometry.`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

var exportFlags struct {
	output      string
	project     string
	material    string
	noExtrusion bool
	noMerge     bool
	mixed       bool
	dedupe      bool
	tolerance   float64
	watch       bool
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output IFC file (default: input name with .ifc)")
	exportCmd.Flags().StringVar(&exportFlags.project, "project", "Converted model", "IFC project name")
	exportCmd.Flags().StringVar(&exportFlags.material, "material", "", "material name to style the exported element with")
	exportCmd.Flags().BoolVar(&exportFlags.noExtrusion, "no-extrusion", false, "disable extrusion detection, always emit faceted geometry")
	exportCmd.Flags().BoolVar(&exportFlags.noMerge, "no-merge", false, "keep raw triangles instead of merging coplanar facets")
	exportCmd.Flags().BoolVar(&exportFlags.mixed, "mixed", false, "allow mixing swept and faceted items in one body")
	exportCmd.Flags().BoolVar(&exportFlags.dedupe, "dedupe", false, "replace repeated shapes with mapped items (experimental)")
	exportCmd.Flags().Float64Var(&exportFlags.tolerance, "tolerance", export.DefaultTolerance, "geometric tolerance for welding and planarity checks")
	exportCmd.Flags().BoolVarP(&exportFlags.watch, "watch", "w", false, "re-run the conversion whenever the input file changes")
	rootCmd.AddCommand(exportCmd)
}

func exportOptions() convert.Options {
	opts := convert.DefaultOptions()
	opts.ProjectName = exportFlags.project
	opts.Export.TryExtrusion = !exportFlags.noExtrusion
	opts.Export.MergeCoplanarFacets = !exportFlags.noMerge
	opts.Export.AllowMixedRepresentations = exportFlags.mixed
	opts.Export.EnableMapping = exportFlags.dedupe
	opts.Export.Tolerance = exportFlags.tolerance
	if exportFlags.material != "" {
		opts.Material = 1
		opts.MaterialDef = export.MaterialDef{Name: exportFlags.material, R: 0.8, G: 0.8, B: 0.8}
	}
	return opts
}

func runExport(cmd *cobra.Command, args []string) {
	input := args[0]
	output := exportFlags.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".ifc"
	}

	if err := exportOnce(input, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !exportFlags.watch {
		return
	}

	fw, err := watcher.New(300 * time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	if err := fw.Watch([]string{input}, func(string) error {
		return exportOnce(input, output)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fw.Start()

	fmt.Printf("Watching %s, press Ctrl-C to stop\n", input)
	select {}
}

func exportOnce(input, output string) error {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	start := time.Now()
	summary, err := convert.File(input, output, exportOptions())
	if err != nil {
		return err
	}

	fmt.Printf("%s %s -> %s\n", green("Converted"), input, output)
	fmt.Printf("  Representation: %s\n", cyan(summary.Kind.String()))
	fmt.Printf("  Triangles: %d, items: %d, entities: %d\n",
		summary.Triangles, summary.Items, summary.Entities)
	fmt.Printf("  Took %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
