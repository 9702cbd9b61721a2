package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vipasu/goifc/version"
)

var rootCmd = &cobra.Command{
	Use:   "goifc",
	Short: "Convert STL geometry to IFC building models",
	Long: `goifc converts STL (Stereolithography) files into IFC4 STEP files.
It picks the most compact IFC representation it can prove correct for each
body: an extruded profile where one is detectable, a faceted BRep for closed
shells and a face-based surface model otherwise.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
