// meshtool builds meshlab shapes without a window: it reports mesh
// statistics, exports Wavefront OBJ files and runs the paper deformation
// headless.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "stats":
		err = cmdStats(args, os.Stdout)
	case "obj", "export":
		err = cmdOBJ(args, os.Stdout)
	case "paper":
		err = cmdPaper(args, os.Stdout)
	case "shapes":
		for _, name := range shapeNames {
			fmt.Println(name)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - procedural mesh utility

Usage:
  meshtool <command> [options]

Commands:
  shapes                          List shape names
  stats <shape> [options]         Show triangle/vertex counts and bounds
  obj <shape> [options]           Export a shape as Wavefront OBJ
  paper [options]                 Run the paper deformation headless

Shape options (stats, obj):
  -config <file>                  Read shape settings from a meshlab.yaml
  -top-n, -bottom-n <n>           Bucket side counts
  -flat, -color, -seed            Bucket shading and colours

Examples:
  meshtool stats bucket -top-n 12 -bottom-n 4
  meshtool obj fighter -o fighter.obj
  meshtool paper -col 50 -row 50 -mag 2 -steps 100 -dt 0.05`)
}
