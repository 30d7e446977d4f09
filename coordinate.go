package rosomaxa

import "encoding/binary"

// Coordinate addresses a node in the GSOM grid.
type Coordinate struct {
	X, Y int
}

// neighbors returns the four cardinal neighbors of c, in a stable order
// (North, East, South, West) so callers iterating them get deterministic
// growth behavior given a fixed random seed.
func (c Coordinate) neighbors() [4]Coordinate {
	return [4]Coordinate{
		{c.X, c.Y + 1},
		{c.X + 1, c.Y},
		{c.X, c.Y - 1},
		{c.X - 1, c.Y},
	}
}

// opposite returns the neighbor coordinate mirrored through c from dir,
// i.e. the coordinate on the other side of c from dir.
func (c Coordinate) opposite(dir Coordinate) Coordinate {
	return Coordinate{X: 2*c.X - dir.X, Y: 2*c.Y - dir.Y}
}

// bytes encodes the coordinate as an 8-byte big-endian key, used as the
// key type for the immutable radix snapshot taken at the start of a
// retrain pass.
func (c Coordinate) bytes() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], uint32(int32(c.X)))
	binary.BigEndian.PutUint32(buf[4:8], uint32(int32(c.Y)))
	return buf
}
