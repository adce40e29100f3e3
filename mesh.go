package tileforge

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// MeshSolid triangulates a solid with marching cubes at the given grid
// spacing.
func MeshSolid(solid model3d.Solid, delta float64) (*model3d.Mesh, error) {
	if delta <= 0 {
		return nil, errors.Wrapf(ErrConfigInvalid, "mesh delta %g", delta)
	}
	mesh := model3d.MarchingCubesSearch(solid, delta, 8)
	if mesh.NumTriangles() == 0 {
		return nil, errors.Wrap(ErrInvalidMesh, "no triangles produced")
	}
	return mesh, nil
}

// ValidateMesh checks that a mesh is manufacturable: watertight, free of
// self-intersections, a single connected body, and enclosing strictly
// positive volume.
func ValidateMesh(mesh *model3d.Mesh) error {
	if mesh == nil || mesh.NumTriangles() == 0 {
		return errors.Wrap(ErrInvalidMesh, "empty mesh")
	}
	if mesh.NeedsRepair() {
		return errors.Wrap(ErrInvalidMesh, "unpaired edges")
	}
	if n := len(mesh.SingularVertices()); n > 0 {
		return errors.Wrapf(ErrInvalidMesh, "%d singular vertices", n)
	}
	if n := mesh.SelfIntersections(); n > 0 {
		return errors.Wrapf(ErrInvalidMesh, "%d self-intersections", n)
	}
	if n := connectedComponents(mesh); n != 1 {
		return errors.Wrapf(ErrInvalidMesh, "%d disconnected components", n)
	}
	if v := mesh.Volume(); v <= 0 {
		return errors.Wrapf(ErrInvalidMesh, "volume %g", v)
	}
	return nil
}

// connectedComponents counts face-adjacency components of the mesh.
func connectedComponents(mesh *model3d.Mesh) int {
	visited := map[*model3d.Triangle]bool{}
	count := 0
	mesh.Iterate(func(t *model3d.Triangle) {
		if visited[t] {
			return
		}
		count++
		visited[t] = true
		queue := []*model3d.Triangle{t}
		for len(queue) > 0 {
			cur := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			for _, n := range mesh.Neighbors(cur) {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
	})
	return count
}

// ExportMesh validates the mesh and writes it as binary STL. Nothing is
// written when validation fails.
func ExportMesh(mesh *model3d.Mesh, path string) error {
	if err := ValidateMesh(mesh); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create output dir")
		}
	}
	if err := mesh.SaveGroupedSTL(path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
