package domain

// RawChunk is one fragment of the streaming response body, split on newlines.
// It is not guaranteed to hold a complete event and may be empty (keep-alive).
type RawChunk []byte

// IsKeepAlive reports whether the chunk carries no data at all.
func (c RawChunk) IsKeepAlive() bool {
	for _, b := range c {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
