package feed

import "strconv"

// MakeID maps a canonical URL (or feed-provided key) to a short stable
// identifier of the form "<namespace>-<base36 hash>". Equal keys in the
// same namespace always produce the same id, which is what lets clients
// keep read/saved state across re-fetches. The namespace keeps news and
// reddit ids apart even for identical URLs.
//
// The hash is the classic rolling multiply-by-31 (h<<5 - h) truncated to
// a signed 32-bit value; collisions across distinct keys are possible but
// rare at feed sizes (at most 25 items per fetch).
func MakeID(namespace, key string) string {
	var h int32
	for _, r := range key {
		h = h<<5 - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return namespace + "-" + strconv.FormatInt(v, 36)
}
