package geo

// Boundary is a coordinate bounding box. A frozen Boundary records bounds a
// producer declared verbatim (read from a file) and ignores Expand; an
// unfrozen Boundary grows as coordinates are inserted into a map under
// construction.
type Boundary struct {
	Min    Coordinate
	Max    Coordinate
	Frozen bool
}

// WorldBoundary covers the whole world and is not frozen.
func WorldBoundary() Boundary {
	return NewBoundary(NewCoordinate(-90, -180), NewCoordinate(90, 180))
}

// InvertedBoundary is the world boundary with min/max swapped, the starting
// point for a boundary that is meant to grow by inclusion: the first
// Expand call initializes it.
func InvertedBoundary() Boundary {
	return NewBoundary(NewCoordinate(90, 180), NewCoordinate(-90, -180))
}

// NewBoundary builds an explicit, unfrozen boundary from two corners.
func NewBoundary(min Coordinate, max Coordinate) Boundary {
	return Boundary{Min: min, Max: max}
}

// Expand grows the boundary to include c. A frozen boundary ignores this.
func (b *Boundary) Expand(c Coordinate) {
	if b.Frozen {
		return
	}

	if c.Lat > b.Max.Lat {
		b.Max.Lat = c.Lat
	}
	if c.Lat < b.Min.Lat {
		b.Min.Lat = c.Lat
	}
	if c.Lon > b.Max.Lon {
		b.Max.Lon = c.Lon
	}
	if c.Lon < b.Min.Lon {
		b.Min.Lon = c.Lon
	}
}
