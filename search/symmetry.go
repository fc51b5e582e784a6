package search

// inverse returns the transformation that undoes t, used to walk the
// time-successor relation backwards when computing a cell's predecessor.
func (t Transformation) inverse() Transformation {
	switch t {
	case Rotate90:
		return Rotate270
	case Rotate270:
		return Rotate90
	default: // Identity, Rotate180, and all reflections are involutions.
		return t
	}
}
