// Package visual is a stub for a future chart/diagram generation
// collaborator. When an answer implies a visual aid it attaches a fixed
// placeholder marker; actual generation is out of scope.
package visual

// Placeholder is the marker attached when a visual is implied.
const Placeholder = "<VISUAL_PLACEHOLDER>"

// Maybe returns the placeholder when flagged, else the empty string.
func Maybe(needsVisual bool) string {
	if needsVisual {
		return Placeholder
	}
	return ""
}
