package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vipasu/goifc/pkg/analysis"
	"github.com/vipasu/goifc/pkg/export"
	"github.com/vipasu/goifc/pkg/stl"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about an STL file",
	Long:  "Show triangle and vertex counts, dimensions, surface area, volume and edge statistics after vertex welding.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	mesh, err := stl.Read(filename, export.DefaultTolerance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	m := analysis.MeasureShell(&mesh.Shell)
	size := mesh.BoundingBox().Size()

	fmt.Println("STL File Information")
	fmt.Println("====================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh Statistics:")
	fmt.Printf("  Triangles: %d\n", m.TriangleCount)
	fmt.Printf("  Welded vertices: %d\n", len(mesh.Shell.Vertices))
	fmt.Printf("  Surface Area: %.6f square units\n", m.SurfaceArea)
	fmt.Printf("  Volume: %.6f cubic units\n\n", m.Volume)

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", size.X)
	fmt.Printf("  Depth (Y): %.6f units\n", size.Y)
	fmt.Printf("  Height (Z): %.6f units\n\n", size.Z)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", m.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", m.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", m.AvgEdgeLength)
}
