package perspective

import "github.com/MobRulesGames/mathgl"

// ProjectionMat returns WorldToScreen as a column-major matrix, for render
// targets that want to hand the projection to the GPU instead of projecting
// each tile on the CPU.
func ProjectionMat() mathgl.Mat4 {
	return mathgl.Mat4{
		32, 16, 0, 0,
		-32, 16, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// InverseProjectionMat is the exact (non-truncating) inverse of
// ProjectionMat.
func InverseProjectionMat() mathgl.Mat4 {
	inv := ProjectionMat()
	inv.Inverse()
	return inv
}

func WorldToScreenMat(transform *mathgl.Mat4, x, y float32) (float32, float32) {
	v := mathgl.Vec4{X: x, Y: y, Z: 0, W: 1}
	v.Transform(transform)
	return v.X, v.Y
}
