package scene

import "github.com/chewxy/math32"

// Layer bits. A node or model carries an ORed set of these; queries
// supply a mask and only entities whose layer intersects the mask are
// considered. LayerIgnoreRaycast always excludes an entity from ray
// queries, regardless of the mask.
const (
	LayerDefault       uint32 = 1 << 0
	LayerUI2D          uint32 = 1 << 1
	LayerIgnoreRaycast uint32 = 1 << 2

	LayerAll uint32 = 0xffffffff
)

// DefaultRaycastMask is the mask RaycastAll is meant to run with: the
// default 3D layer plus the model portion of the 2D UI layer.
const DefaultRaycastMask = LayerDefault | LayerUI2D

// MaxRayDistance stands in for "unbounded" when a caller has no
// distance cap.
const MaxRayDistance = math32.MaxFloat32
