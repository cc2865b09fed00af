package haptic

import (
	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/scene"
)

// inReach reports whether the tool is in contact range of a sphere:
// distance strictly below margin+radius. A distance exactly at the
// threshold is not in contact.
func inReach(toolPos, center md3.Vec, radius, margin float64) bool {
	return scene.Dist(toolPos, center) < margin+radius
}
