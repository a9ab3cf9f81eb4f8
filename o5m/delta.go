package o5m

// register identifies one of the nine independent delta-coded values o5m
// carries across the stream.
type register int

const (
	registerID register = iota
	registerTime
	registerLat
	registerLon
	registerChangeSet
	registerWayRef
	registerRelNodeRef
	registerRelWayRef
	registerRelRelRef
	registerCount
)

// deltaBank holds the running value of each register. A dataset never
// transmits absolute id/time/lat/lon/ref values, only the difference from
// the previous value seen in the same register.
type deltaBank struct {
	values [registerCount]int64
}

// encode returns the delta between v and the register's current value and
// advances the register to v.
func (d *deltaBank) encode(r register, v int64) int64 {
	delta := v - d.values[r]
	d.values[r] = v
	return delta
}

// decode advances the register by delta and returns its new value.
func (d *deltaBank) decode(r register, delta int64) int64 {
	d.values[r] += delta
	return d.values[r]
}

// reset zeroes every register. Triggered by a dataset reset (0xFF) and at
// the start of a stream.
func (d *deltaBank) reset() {
	*d = deltaBank{}
}
