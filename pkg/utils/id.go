package utils

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var (
	// Counter used when crypto/rand is unavailable
	idCounter uint64
)

// GenerateRunID generates a run ID with a timestamp prefix
func GenerateRunID() string {
	timestamp := time.Now().Format("20060102-150405")
	b := make([]byte, 4)
	_, err := rand.Read(b)
	if err != nil {
		count := atomic.AddUint64(&idCounter, 1)
		return fmt.Sprintf("run-%s-%x", timestamp, count)
	}
	return fmt.Sprintf("run-%s-%s", timestamp, hex.EncodeToString(b))
}

// EntropySeed returns a non-reproducible seed drawn from the system CSPRNG,
// falling back to the wall clock. Seeds fit in 53 bits so they survive a
// round trip through JSON numbers.
func EntropySeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return (time.Now().UnixNano() ^ int64(atomic.AddUint64(&idCounter, 1))) & (1<<53 - 1)
	}
	return int64(binary.LittleEndian.Uint64(b[:]) & (1<<53 - 1))
}
