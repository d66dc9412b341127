package paginate

// ScrollPosition describes a scrolled container in pixels.
type ScrollPosition struct {
	Offset   float64 // Distance scrolled from the top
	Viewport float64 // Visible height
	Content  float64 // Total content height
}

// Remaining returns the distance between the bottom of the viewport and the end of the content.
func (p ScrollPosition) Remaining() float64 {
	return p.Content - (p.Offset + p.Viewport)
}

// NearBottom reports whether the viewport is within threshold of the end of the content.
func NearBottom(pos ScrollPosition, threshold float64) bool {
	return pos.Remaining() <= threshold
}
