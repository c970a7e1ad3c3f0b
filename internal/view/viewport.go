package view

// stickThreshold is how close to the bottom, in pixels, the viewport must
// be for an append to carry the scroll position along with it.
const stickThreshold = 80

// Viewport models the scroll state of the log pane. Appending content only
// moves the scroll position when the viewer was already near the bottom, so
// an operator who has scrolled back to inspect history stays put while new
// lines accumulate below.
type Viewport struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}

// AtBottom reports whether the viewport is within the stick threshold of
// the bottom of its content.
func (v *Viewport) AtBottom() bool {
	return v.ScrollHeight-v.ScrollTop < v.ClientHeight+stickThreshold
}

// Append grows the content by height and returns whether the viewport
// followed it to the bottom. The stick decision is made against the
// position before the content grew.
func (v *Viewport) Append(height float64) bool {
	stick := v.AtBottom()
	v.ScrollHeight += height
	if stick {
		v.ScrollToBottom()
	}
	return stick
}

// Trim removes height worth of content from the top, pulling the scroll
// position up with it so the visible region is unchanged.
func (v *Viewport) Trim(height float64) {
	v.ScrollHeight -= height
	if v.ScrollHeight < 0 {
		v.ScrollHeight = 0
	}
	v.ScrollTop -= height
	if v.ScrollTop < 0 {
		v.ScrollTop = 0
	}
}

// ScrollToBottom pins the viewport to the end of the content.
func (v *Viewport) ScrollToBottom() {
	v.ScrollTop = v.ScrollHeight - v.ClientHeight
	if v.ScrollTop < 0 {
		v.ScrollTop = 0
	}
}
