package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"github.com/esimov/cellgrid"
	"github.com/esimov/cellgrid/utils"
	"github.com/spf13/cobra"
)

var previewWatch bool

var previewCmd = &cobra.Command{
	Use:   "preview [layout]",
	Short: "Open a window sized by the layout; resize it to see the grid respond",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		proc, err := newProcessor()
		if err != nil {
			return err
		}
		l, err := cellgrid.LoadLayout(path)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		baseDir := filepath.Dir(path)
		scene, err := cellgrid.LoadScene(ctx, l, baseDir)
		if err != nil {
			return err
		}

		gui := cellgrid.NewGUI(scene, proc)

		if previewWatch {
			go func() {
				err := cellgrid.Watch(ctx, path, func(l *cellgrid.Layout, err error) {
					if err == nil {
						var s *cellgrid.Scene
						if s, err = cellgrid.LoadScene(ctx, l, baseDir); err == nil {
							gui.Reload(s)
						}
					}
					if err != nil {
						log.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
					}
				})
				if err != nil {
					log.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
				}
			}()
		}

		// Launch Gio GUI thread.
		go func() {
			if err := gui.Run(); err != nil {
				log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
			}
			cancel()
			os.Exit(0)
		}()
		app.Main()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewWatch, "watch", false, "Reload the layout every time the file changes")
}
