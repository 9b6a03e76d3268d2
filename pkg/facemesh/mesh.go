// Package facemesh maps dense face-mesh detector output to the handful
// of anatomical landmarks the overlay pipeline actually uses.
package facemesh

// Landmark indices into the 478-point face mesh.
//
// The table is tied to this specific mesh topology. A detector with a
// different topology that still returns 478 points will silently yield
// wrong-but-plausible landmarks; bounds checking on the array length is
// the only guard we have.
const (
	LeftEyeIndex    = 468 // left iris center
	RightEyeIndex   = 473 // right iris center
	NoseBridgeIndex = 6   // top of nose bridge
	LeftEarIndex    = 234 // left face edge / tragion
	RightEarIndex   = 454 // right face edge / tragion

	// MeshSize is the expected landmark count per candidate.
	MeshSize = 478
)

// Logical landmark names, as recorded in KeyLandmarks.Missing.
const (
	NameLeftEye    = "leftEye"
	NameRightEye   = "rightEye"
	NameNoseBridge = "noseBridge"
	NameLeftEar    = "leftEar"
	NameRightEar   = "rightEar"
)
