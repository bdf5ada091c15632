package models

// HasSize reports whether size is one of the product's size labels
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether color is one of the product's colors.
// Products without colors accept only an empty selection.
func (p Product) HasColor(color string) bool {
	if color == "" {
		return true
	}
	for _, c := range p.Colors {
		if matchesFold(c, color) {
			return true
		}
	}
	return false
}

// DefaultSize returns the first listed size, which the detail page preselects
func (p Product) DefaultSize() string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return p.Sizes[0]
}
