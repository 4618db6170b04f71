// Command rendermesh renders one frame of a mesh with the demo camera and
// writes or displays it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/netisu/trimesh/internal/config"
	"github.com/netisu/trimesh/internal/demo"
	"github.com/netisu/trimesh/internal/imageio"
	"github.com/netisu/trimesh/internal/render"
	"github.com/netisu/trimesh/internal/viewer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

type options struct {
	cfg        config.Config
	configPath string
	verbose    bool
	progress   bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	def := config.Default()
	fs := flag.NewFlagSet("rendermesh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: rendermesh [flags] <mesh>")
		fs.PrintDefaults()
	}

	var o options
	flags := &o.cfg
	fs.IntVar(&flags.Width, "width", def.Width, "frame width in pixels")
	fs.IntVar(&flags.Height, "height", def.Height, "frame height in pixels")
	fs.StringVar(&flags.Assets, "assets", def.Assets, "shader asset directory (may hold "+config.ShadingFilename+")")
	fs.StringVar(&flags.Output, "o", def.Output, "output image (.png, .jpg, .bmp, .tiff); empty to skip")
	fs.BoolVar(&flags.Show, "show", def.Show, "display the frame in a window")
	fs.Float64Var(&flags.FOV, "fov", def.FOV, "vertical field of view in degrees")
	fs.Float64Var(&flags.Near, "near", def.Near, "near clip plane")
	fs.Float64Var(&flags.Far, "far", def.Far, "far clip plane")
	fs.IntVar(&flags.Supersample, "ssaa", def.Supersample, "supersampling factor")
	fs.Float64Var(&flags.Simplify, "simplify", def.Simplify, "decimate the mesh to this fraction of its triangles (0 keeps it)")
	fs.BoolVar(&flags.Fit, "fit", def.Fit, "fit the field of view to the mesh")
	fs.BoolVar(&flags.Wireframe, "wireframe", def.Wireframe, "draw triangle edges over the surface")
	fs.StringVar(&o.configPath, "config", "", "YAML run configuration; flags given explicitly override it")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.BoolVar(&o.progress, "progress", false, "show rasterization progress on a terminal")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return o, err
		}
		// the flag package has already reported it
		return o, &usageError{err: err, reported: true}
	}

	cfg := def
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return o, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = flags.Width
		case "height":
			cfg.Height = flags.Height
		case "assets":
			cfg.Assets = flags.Assets
		case "o":
			cfg.Output = flags.Output
		case "show":
			cfg.Show = flags.Show
		case "fov":
			cfg.FOV = flags.FOV
		case "near":
			cfg.Near = flags.Near
		case "far":
			cfg.Far = flags.Far
		case "ssaa":
			cfg.Supersample = flags.Supersample
		case "simplify":
			cfg.Simplify = flags.Simplify
		case "fit":
			cfg.Fit = flags.Fit
		case "wireframe":
			cfg.Wireframe = flags.Wireframe
		}
	})
	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Mesh = fs.Arg(0)
	default:
		fs.Usage()
		return o, &usageError{err: fmt.Errorf("%d mesh arguments", fs.NArg()), reported: true}
	}
	if err := cfg.Validate(); err != nil {
		return o, &usageError{err: err}
	}
	o.cfg = cfg
	return o, nil
}

// usageError marks a bad command line; it exits with status 2.
type usageError struct {
	err      error
	reported bool
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func run(args []string, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	var ue *usageError
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &ue):
		if !ue.reported {
			fmt.Fprintln(stderr, "rendermesh:", err)
		}
		return 2
	case err != nil:
		fmt.Fprintln(stderr, "rendermesh:", err)
		return 1
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	cfg := o.cfg
	opts := []render.Option{
		render.WithSupersample(cfg.Supersample),
		render.WithWireframe(cfg.Wireframe),
	}
	var bar *progressbar.ProgressBar
	if o.progress && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.Default(-1, "rasterizing")
		opts = append(opts, render.WithProgress(func(n int) {
			bar.Add(n)
		}))
	}

	err = demo.Run(cfg, demo.Renderer(opts...), sink(cfg))
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		slog.Error("render failed", "mesh", cfg.Mesh, "err", err)
		return 1
	}
	return 0
}

func sink(cfg config.Config) demo.Sink {
	return func(frame render.Frame) error {
		img, err := frame.Image()
		if err != nil {
			return err
		}
		if cfg.Output != "" {
			if err := imageio.Write(cfg.Output, img); err != nil {
				return err
			}
			slog.Info("frame written", "path", cfg.Output, "width", frame.Width, "height", frame.Height)
		}
		if cfg.Show {
			return viewer.Show(filepath.Base(cfg.Mesh), img)
		}
		return nil
	}
}
