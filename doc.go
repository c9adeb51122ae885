/*
Package cellgrid is a responsive layout library: it resolves a tree of named cells,
described with coordinates relative to their parent, into absolute pixel rectangles.

Cells without an explicit position flow after their previous siblings, cells without
an explicit size fill the remaining space of their parent. Contents attached to a cell
are scaled and aligned inside the cell area with Fit and Align.

The package provides a command line interface, supporting subcommands for rendering,
inspecting and previewing layout files. To check the supported commands type:

	$ cellgrid --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"

		"github.com/esimov/cellgrid"
	)

	func main() {
		root := cellgrid.NewCell[string](cellgrid.CellConfig{
			Name:   "root",
			Bounds: &cellgrid.RectSpec{Width: cellgrid.Float(800), Height: cellgrid.Float(600)},
			Cells: []cellgrid.CellConfig{
				{Name: "sidebar", Bounds: &cellgrid.RectSpec{Width: cellgrid.Float(0.25)}},
				{Name: "main", Bounds: &cellgrid.RectSpec{Y: cellgrid.Float(0)}},
			},
		})

		if main, ok := root.GetCellByName("main"); ok {
			fmt.Println(main.Bounds()) // {200 0 600 600}
		}
	}
*/
package cellgrid
