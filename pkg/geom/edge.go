package geom

// EdgeKey identifies a directed edge by the bit patterns of both endpoints.
type EdgeKey [6]uint32

// Edge is a directed segment. Edge{A, B} and Edge{B, A} are distinct.
type Edge struct {
	From Vector3
	To   Vector3
}

// Reverse returns the edge with the opposite winding.
func (e Edge) Reverse() Edge {
	return Edge{From: e.To, To: e.From}
}

func (e Edge) Key() EdgeKey {
	f, t := e.From.Key(), e.To.Key()
	return EdgeKey{f[0], f[1], f[2], t[0], t[1], t[2]}
}

// Equal compares both endpoints bit-exactly, respecting direction.
func (e Edge) Equal(o Edge) bool {
	return e.Key() == o.Key()
}
