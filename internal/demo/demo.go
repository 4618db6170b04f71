// Package demo drives a rendering backend through the fixed sequence of the
// mesh demo: initialize, load, build the model, aim the camera, render,
// hand the frame to a sink and shut down.
package demo

import (
	"log/slog"

	"github.com/netisu/trimesh"
	"github.com/netisu/trimesh/internal/camera"
	"github.com/netisu/trimesh/internal/config"
	"github.com/netisu/trimesh/internal/render"
)

// Backend is the call surface of a rendering context. M is its model handle.
type Backend[M any] interface {
	LoadMesh(path string) ([]float64, []uint32, error)
	CreateModel(positions []float64, indices []uint32) (M, error)
	SetupModel(m M) error
	SetPerspectiveProjection(m M, aspect, fov, near, far float64) error
	SetCameraLookAt(m M, eye, target render.Vec4) error
	RenderMesh(m M) (render.Frame, error)
	Shutdown() error
}

// Fitter is implemented by backends that can frame the model automatically.
type Fitter[M any] interface {
	FitProjection(m M, aspect, near, far float64) error
}

// Lighter is implemented by backends with a movable light.
type Lighter[M any] interface {
	SetLightPos(m M, pos render.Vec4) error
}

// ClearColorer is implemented by backends with a configurable background.
type ClearColorer interface {
	SetClearColor(r, g, b, a float64) error
}

// InitFunc creates a backend for width x height frames using the given
// shader directory.
type InitFunc[M any] func(width, height int, shaderDir string) (Backend[M], error)

// Sink consumes the rendered frame, for example by writing or displaying it.
type Sink func(frame render.Frame) error

// StepError reports which step of the sequence failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func fail(step string, err error) error {
	return &StepError{Step: step, Err: err}
}

// Run performs the demo sequence. Once init has succeeded the backend is shut
// down exactly once, whether or not a later step fails.
func Run[M any](cfg config.Config, open InitFunc[M], sink Sink) (err error) {
	backend, err := open(cfg.Width, cfg.Height, cfg.Assets)
	if err != nil {
		return fail("initialize", err)
	}
	defer func() {
		if serr := backend.Shutdown(); serr != nil && err == nil {
			err = fail("shutdown", serr)
		}
	}()

	if cc, ok := backend.(ClearColorer); ok {
		c := cfg.ClearColor
		if err := cc.SetClearColor(c[0], c[1], c[2], c[3]); err != nil {
			return fail("set clear color", err)
		}
	}

	positions, indices, err := backend.LoadMesh(cfg.Mesh)
	if err != nil {
		return fail("load mesh", err)
	}
	slog.Info("mesh loaded", "path", cfg.Mesh, "vertices", len(positions)/3, "triangles", len(indices)/3)

	if cfg.Simplify > 0 && cfg.Simplify < 1 {
		simplified, err := trimesh.Simplify(trimesh.NewIndexedMesh(positions, indices), cfg.Simplify)
		if err != nil {
			return fail("simplify mesh", err)
		}
		positions, indices = simplified.Positions, simplified.Indices
		slog.Info("mesh simplified", "factor", cfg.Simplify, "triangles", len(indices)/3)
	}

	model, err := backend.CreateModel(positions, indices)
	if err != nil {
		return fail("create model", err)
	}
	if err := backend.SetupModel(model); err != nil {
		return fail("setup model", err)
	}

	aspect := float64(cfg.Width) / float64(cfg.Height)
	if err := backend.SetPerspectiveProjection(model, aspect, cfg.FOV, cfg.Near, cfg.Far); err != nil {
		return fail("set projection", err)
	}

	eye, target, err := camera.Placement(positions)
	if err != nil {
		return fail("place camera", err)
	}
	slog.Debug("camera placed", "eye", eye, "target", target)
	if err := backend.SetCameraLookAt(model, eye, target); err != nil {
		return fail("set camera", err)
	}

	if cfg.Fit {
		if f, ok := backend.(Fitter[M]); ok {
			if err := f.FitProjection(model, aspect, cfg.Near, cfg.Far); err != nil {
				return fail("fit projection", err)
			}
		} else {
			slog.Warn("backend cannot fit the projection; keeping the configured field of view")
		}
	}
	if cfg.Light != nil {
		if l, ok := backend.(Lighter[M]); ok {
			pos := render.Vec4{cfg.Light[0], cfg.Light[1], cfg.Light[2], 1}
			if err := l.SetLightPos(model, pos); err != nil {
				return fail("set light", err)
			}
		}
	}

	frame, err := backend.RenderMesh(model)
	if err != nil {
		return fail("render mesh", err)
	}
	grid, err := frame.Reshape()
	if err != nil {
		return fail("reshape frame", err)
	}
	slog.Debug("frame reshaped", "rows", len(grid), "columns", len(grid[0]), "channels", len(grid[0][0]))

	if err := sink(frame); err != nil {
		return fail("output frame", err)
	}
	return nil
}

// Renderer adapts render.Init to an InitFunc.
func Renderer(opts ...render.Option) InitFunc[*render.Model] {
	return func(width, height int, shaderDir string) (Backend[*render.Model], error) {
		sys, err := render.Init(width, height, shaderDir, opts...)
		if err != nil {
			return nil, err
		}
		return sys, nil
	}
}
