package main

import (
	"fmt"
	"os"

	"github.com/esimov/cellgrid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var treeFlags struct {
	term     bool
	area     bool
	types    bool
	contents bool
	border   bool
}

var treeCmd = &cobra.Command{
	Use:   "tree [layout]",
	Short: "Print the resolved cell hierarchy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := cellgrid.LoadLayout(args[0])
		if err != nil {
			return err
		}

		cfg := l.Grid
		switch {
		case treeFlags.term:
			w, h, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				return fmt.Errorf("unable to get the terminal size: %w", err)
			}
			cfg.BoundsFunc = func() cellgrid.Rect {
				return cellgrid.NewRect(0, 0, float64(w), float64(h))
			}
		case procFlags.width > 0 && procFlags.height > 0:
			cfg.BoundsFunc = func() cellgrid.Rect {
				return cellgrid.NewRect(0, 0, float64(procFlags.width), float64(procFlags.height))
			}
		}

		root := cellgrid.NewCell[cellgrid.ContentSpec](cfg)
		for _, c := range l.Contents {
			if cell, ok := root.GetCellByName(c.Cell); ok {
				cell.AddContent(c)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), cellgrid.Tree(root, cellgrid.TreeOptions{
			Area:     treeFlags.area,
			Types:    treeFlags.types,
			Contents: treeFlags.contents,
			Border:   treeFlags.border,
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	f := treeCmd.Flags()
	f.BoolVar(&treeFlags.term, "term", false, "Use the terminal size as root bounds")
	f.BoolVar(&treeFlags.area, "area", false, "Print the content area of every cell")
	f.BoolVar(&treeFlags.types, "types", false, "Print the scale and align types")
	f.BoolVar(&treeFlags.contents, "contents", false, "Print the number of contents per cell")
	f.BoolVar(&treeFlags.border, "border", false, "Wrap the tree in a box")
}
