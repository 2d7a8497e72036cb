package render

import (
	"fmt"

	"unicorn-renderer/internal/mathutil"
)

// WorldView is the camera: position, view target and the screen plane
// derived from them. Screen coordinates (x, y) are measured along UX and UY
// on the plane at FocalLength in front of the camera.
type WorldView struct {
	CameraPosition mathutil.Vec3
	LookAt         mathutil.Vec3
	FocalLength    float64

	N    mathutil.Vec3 // view direction
	UX   mathutil.Vec3
	UY   mathutil.Vec3
	Zero mathutil.Vec3 // screen plane origin
}

// NewWorldView derives the screen basis. Camera and target must differ and
// the focal length must be positive.
func NewWorldView(camera, lookAt mathutil.Vec3, focalLength float64) *WorldView {
	view := lookAt.Sub(camera)
	if view.Len() == 0 {
		panic(fmt.Sprintf("render: camera at look-at point %v", camera))
	}
	if focalLength <= 0 {
		panic(fmt.Sprintf("render: non-positive focal length %v", focalLength))
	}

	n := view.Unit()
	ux, uy := n.CrossAxes()

	return &WorldView{
		CameraPosition: camera,
		LookAt:         lookAt,
		FocalLength:    focalLength,
		N:              n,
		UX:             ux,
		UY:             uy,
		Zero:           camera.Add(n.Scale(focalLength)),
	}
}

// Ray returns the unit direction, in camera space, through screen point (x, y).
func (wv *WorldView) Ray(x, y float64) mathutil.Vec3 {
	return mathutil.Vec3{x, y, wv.FocalLength}.Unit()
}
