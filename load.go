package trimesh

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// LoadIndexed loads a mesh file, choosing the parser from the extension.
// http and https URLs are downloaded first.
func LoadIndexed(name string) (*IndexedMesh, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		local, err := fetch(name)
		if err != nil {
			return nil, err
		}
		defer os.Remove(local)
		return loadIndexedFile(local)
	}
	return loadIndexedFile(name)
}

func loadIndexedFile(name string) (*IndexedMesh, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".obj":
		return LoadIndexedOBJ(name)
	case ".gltf", ".glb":
		return LoadIndexedGLTF(name)
	case ".stl":
		return LoadIndexedSTL(name)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
}

// fetch downloads url into a temporary file that keeps the URL's extension.
func fetch(url string) (string, error) {
	client := http.Client{
		Timeout: 30 * time.Second, // Prevent hanging
	}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: %s", url, resp.Status)
	}

	ext := path.Ext(strings.SplitN(url, "?", 2)[0])
	file, err := os.CreateTemp("", "mesh-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}
