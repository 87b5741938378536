// Package entropy derives seeds for randomized game sessions from
// crypto/rand, with a wall-clock fallback.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Seed returns a non-negative random seed suitable for math/rand sources.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
