// Command meshinfo prints statistics of a mesh file and where the render
// demo would place its camera.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/netisu/trimesh"
	"github.com/netisu/trimesh/internal/camera"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("meshinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	simplify := fs.Float64("simplify", 0, "also report the mesh decimated to this fraction of its triangles")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: meshinfo [-simplify f] <mesh>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	path := fs.Arg(0)
	mesh, err := trimesh.LoadIndexed(path)
	if err != nil {
		logger.Error("load mesh", "path", path, "err", err)
		return 1
	}
	if err := report(stdout, path, mesh); err != nil {
		logger.Error("report", "path", path, "err", err)
		return 1
	}

	if *simplify > 0 {
		simplified, err := trimesh.Simplify(mesh, *simplify)
		if err != nil {
			logger.Error("simplify", "factor", *simplify, "err", err)
			return 1
		}
		fmt.Fprintf(stdout, "\n--- SIMPLIFIED (%g) ---\n", *simplify)
		fmt.Fprintf(stdout, "Vertices: %d\n", simplified.VertexCount())
		fmt.Fprintf(stdout, "Triangles: %d\n", simplified.TriangleCount())
	}
	return 0
}

func report(w io.Writer, path string, mesh *trimesh.IndexedMesh) error {
	box := mesh.BoundingBox()
	eye, target, err := camera.Placement(mesh.Positions)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "--- MESH STATS: %s ---\n", path)
	fmt.Fprintf(w, "Vertices: %d\n", mesh.VertexCount())
	fmt.Fprintf(w, "Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(w, "UVs: %t\n", len(mesh.UVs) > 0)
	if mesh.Material != nil {
		fmt.Fprintf(w, "Material: %s\n", mesh.Material.Name)
	}
	fmt.Fprintf(w, "Bounding Box Min: %+v\n", box.Min)
	fmt.Fprintf(w, "Bounding Box Max: %+v\n", box.Max)
	fmt.Fprintf(w, "Bounding Box Center: %+v\n", box.Center())
	fmt.Fprintf(w, "Centroid: %+v\n", mesh.Centroid())
	fmt.Fprintf(w, "Camera Eye: %v\n", eye.Vec3())
	fmt.Fprintf(w, "Camera Target: %v\n", target.Vec3())
	return nil
}
