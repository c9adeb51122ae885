package main

import (
	"fmt"
	"log"
	"os"

	"github.com/esimov/cellgrid"
	"github.com/spf13/cobra"
)

const HelpBanner = `
┌─┐┌─┐┬  ┬  ┌─┐┬─┐┬┌┬┐
│  ├┤ │  │  │ ┬├┬┘│ ││
└─┘└─┘┴─┘┴─┘└─┘┴└─┴─┴┘

Responsive hierarchical layouts.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

// procFlags holds the flags shared by the commands rendering a layout.
var procFlags struct {
	width      int
	height     int
	background string
	composite  string
	blend      string
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:          "cellgrid",
	Short:        "Resolve and render responsive cell layouts",
	Long:         fmt.Sprintf(HelpBanner, Version),
	SilenceUsage: true,
}

func main() {
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&procFlags.width, "width", 0, "Root width, overrides the layout bounds")
	pf.IntVar(&procFlags.height, "height", 0, "Root height, overrides the layout bounds")
	pf.StringVar(&procFlags.background, "bg", "", "Background color (hex)")
	pf.StringVar(&procFlags.composite, "composite", "", "Composite operation used to paint the contents")
	pf.StringVar(&procFlags.blend, "blend", "", "Blend mode used to paint the contents")
	pf.BoolVar(&procFlags.debug, "debug", false, "Outline every cell")
}

// newProcessor builds the processor configured by the shared flags.
// Invalid flag values are reported before any layout is loaded.
func newProcessor() (*cellgrid.Processor, error) {
	proc := &cellgrid.Processor{
		Width:      procFlags.width,
		Height:     procFlags.height,
		Background: procFlags.background,
		Composite:  procFlags.composite,
		Blend:      procFlags.blend,
		Debug:      procFlags.debug,
	}
	if err := proc.Validate(); err != nil {
		return nil, err
	}
	return proc, nil
}
