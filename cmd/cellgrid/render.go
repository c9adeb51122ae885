package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/esimov/cellgrid"
	"github.com/esimov/cellgrid/utils"
	"github.com/spf13/cobra"
)

var renderFlags struct {
	source      string
	destination string
	format      string
	ext         string
	workers     int
	watch       bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a layout file, an URL or a directory of layouts",
	Long: `Render resolves the layout grid and paints its contents into an image.
The output format follows the destination extension: png, jpg, bmp or svg.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proc, err := newProcessor()
		if err != nil {
			return err
		}
		proc.Format = cellgrid.Format(renderFlags.format)
		proc.Output = renderFlags.ext

		op := &cellgrid.Ops{
			Src:      renderFlags.source,
			Dst:      renderFlags.destination,
			PipeName: pipeName,
			Ext:      renderFlags.ext,
			Workers:  renderFlags.workers,
		}
		if err := proc.Execute(op); err != nil {
			return err
		}
		if !renderFlags.watch || op.Src == pipeName || utils.IsValidUrl(op.Src) {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		log.Println(utils.DecorateText("watching "+op.Src+" for changes...", utils.StatusMessage))
		return cellgrid.Watch(ctx, op.Src, func(_ *cellgrid.Layout, err error) {
			if err != nil {
				log.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
				return
			}
			if err := proc.Execute(op); err != nil {
				log.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.source, "in", "i", pipeName, "Source layout file, URL or directory")
	f.StringVarP(&renderFlags.destination, "out", "o", pipeName, "Destination file or directory")
	f.StringVar(&renderFlags.format, "format", "", "Layout format when reading from a pipe (yaml, toml, json)")
	f.StringVar(&renderFlags.ext, "ext", "", "Output format when writing to a pipe or a directory")
	f.IntVar(&renderFlags.workers, "conc", runtime.NumCPU(), "Number of files to process concurrently")
	f.BoolVar(&renderFlags.watch, "watch", false, "Render again every time the source layout changes")
}
