// Package camera places the demo camera relative to a mesh's vertex array.
package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrEmpty = errors.New("camera: no vertex positions")

// distance scales the bounding corner away from the mesh.
const distance = 3

func check(positions []float64) error {
	if len(positions) == 0 {
		return ErrEmpty
	}
	if len(positions)%3 != 0 {
		return fmt.Errorf("camera: %d position values is not a multiple of 3", len(positions))
	}
	return nil
}

// Centroid is the mean of the positions viewed as a V x 3 array.
func Centroid(positions []float64) (mgl64.Vec3, error) {
	if err := check(positions); err != nil {
		return mgl64.Vec3{}, err
	}
	var sum mgl64.Vec3
	for i := 0; i < len(positions); i += 3 {
		sum = sum.Add(mgl64.Vec3{positions[i], positions[i+1], positions[i+2]})
	}
	return sum.Mul(3 / float64(len(positions))), nil
}

// Max is the per-axis maximum of the positions.
func Max(positions []float64) (mgl64.Vec3, error) {
	if err := check(positions); err != nil {
		return mgl64.Vec3{}, err
	}
	m := mgl64.Vec3{positions[0], positions[1], positions[2]}
	for i := 3; i < len(positions); i += 3 {
		for k := 0; k < 3; k++ {
			if positions[i+k] > m[k] {
				m[k] = positions[i+k]
			}
		}
	}
	return m, nil
}

// Placement aims the camera at the centroid from three times the maximum
// corner, level with the centroid.
func Placement(positions []float64) (eye, target mgl64.Vec4, err error) {
	c, err := Centroid(positions)
	if err != nil {
		return eye, target, err
	}
	m, err := Max(positions)
	if err != nil {
		return eye, target, err
	}
	target = c.Vec4(1)
	eye = mgl64.Vec4{distance * m.X(), distance * c.Y(), distance * m.Z(), 1}
	return eye, target, nil
}
