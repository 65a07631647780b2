package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chazu/meshfit/pkg/geom"
	"github.com/chazu/meshfit/pkg/logging"
	"github.com/chazu/meshfit/pkg/pointfile"
	"github.com/spf13/cobra"
)

// stdinName is the file name that reads from standard input.
const stdinName = "-"

type sphereOptions struct {
	scene      string
	points     []string
	tolerance  float64
	maxPasses  int
	cells      int
	jsonOutput bool
}

func newSphereCommand() *cobra.Command {
	opts := &sphereOptions{}

	cmd := &cobra.Command{
		Use:   "sphere",
		Short: "Compute the bounding sphere of a scene and/or point files",
		Long: `Evaluate a scene file, tessellate it, add the points of any point files,
and print the approximate minimum enclosing sphere of all of it.

Point files hold one point per line as three numbers separated by
whitespace or commas. Use "-" to read a file from standard input.`,
		Example: `  meshfit sphere --scene examples/table.scene
  meshfit sphere --points examples/cloud.xyz --json
  cat cloud.xyz | meshfit sphere --points - --max-passes 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSphere(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.scene, "scene", "s", "", "scene file to evaluate")
	f.StringSliceVarP(&opts.points, "points", "p", nil, "point file(s) to include")
	f.Float64Var(&opts.tolerance, "tolerance", 0, "solver tolerance (overrides config)")
	f.IntVar(&opts.maxPasses, "max-passes", 0, "solver refinement pass cap (overrides config)")
	f.IntVar(&opts.cells, "cells", 0, "marching cubes resolution (overrides config)")
	f.BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON")
	return cmd
}

func runSphere(cmd *cobra.Command, opts *sphereOptions) error {
	cc, err := getCLIContext(cmd)
	if err != nil {
		return err
	}
	if opts.scene == "" && len(opts.points) == 0 {
		return errors.New("nothing to fit: pass --scene and/or --points")
	}

	cfg := *cc.Config
	if cmd.Flags().Changed("tolerance") {
		cfg.Sphere.Tolerance = opts.tolerance
	}
	if cmd.Flags().Changed("max-passes") {
		cfg.Sphere.MaxPasses = opts.maxPasses
	}
	if cmd.Flags().Changed("cells") {
		cfg.Kernel.MeshCells = opts.cells
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cc.Logger.Named("sphere")

	var source string
	if opts.scene != "" {
		b, err := readInput(cmd, opts.scene)
		if err != nil {
			return fmt.Errorf("read scene: %w", err)
		}
		source = string(b)
		log.Debug("scene loaded", logging.String("file", opts.scene), logging.Int("bytes", len(b)))
	}

	var extra []geom.Vec3
	for _, name := range opts.points {
		pts, err := readPoints(cmd, name)
		if err != nil {
			return err
		}
		log.Debug("points loaded", logging.String("file", name), logging.Int("points", len(pts)))
		extra = append(extra, pts...)
	}

	result := NewApp(&cfg, log).Fit(source, extra)

	if opts.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
	}

	if n := len(result.Errors); n > 0 {
		return fmt.Errorf("scene has %d error(s)", n)
	}
	if result.Sphere == nil {
		return errors.New("no points to fit")
	}
	return nil
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == stdinName {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func readPoints(cmd *cobra.Command, name string) ([]geom.Vec3, error) {
	if name == stdinName {
		return pointfile.Read(cmd.InOrStdin())
	}
	return pointfile.ReadFile(name)
}

// printResult writes the human-readable report. Diagnostics go to errOut.
func printResult(out, errOut io.Writer, r Result) {
	for _, w := range r.Warnings {
		fmt.Fprintf(errOut, "warning: %s\n", w.Message)
	}
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(errOut, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(errOut, "error: %s\n", e.Message)
		}
	}
	if r.Sphere == nil {
		return
	}
	fmt.Fprintf(out, "center:   %s\n", r.Sphere.Center)
	fmt.Fprintf(out, "radius:   %g\n", r.Sphere.Radius)
	fmt.Fprintf(out, "diameter: %g\n", r.Sphere.Diameter)
	fmt.Fprintf(out, "points:   %d\n", r.Sphere.Points)
	fmt.Fprintf(out, "parts:    %d\n", len(r.Parts))
}
