package kv

// Pair is a struct for key value pairs.
type Pair struct {
	Key   []byte
	Value []byte
}

// staticCursor implements the ForwardCursor interface for a slice of pairs.
type staticCursor struct {
	idx   int
	pairs []Pair
}

// NewStaticCursor returns an instance of a ForwardCursor over the provided
// pairs. The pairs must already be in key order.
func NewStaticCursor(pairs []Pair) ForwardCursor {
	return &staticCursor{
		pairs: pairs,
	}
}

// Next returns the next pair.
func (c *staticCursor) Next() ([]byte, []byte) {
	if c.idx >= len(c.pairs) {
		return nil, nil
	}

	pair := c.pairs[c.idx]
	c.idx++
	return pair.Key, pair.Value
}

// Err is always nil for a static cursor.
func (c *staticCursor) Err() error {
	return nil
}

// Close is a no-op for a static cursor.
func (c *staticCursor) Close() error {
	return nil
}
