// Package util provides small helpers shared across IFPlan packages.
package util

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces UUIDv7 identifiers that sort by creation time even
// when several are issued within the same millisecond.
type IDGenerator struct {
	mu       sync.Mutex
	clock    Clock
	lastTime int64
	counter  uint16
}

// NewIDGenerator creates a generator driven by the system clock.
func NewIDGenerator() *IDGenerator {
	return NewIDGeneratorWithClock(SystemClock)
}

// NewIDGeneratorWithClock creates a generator that reads time from clock.
func NewIDGeneratorWithClock(clock Clock) *IDGenerator {
	return &IDGenerator{clock: clock}
}

// NewID returns the next identifier.
func (g *IDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock().UnixMilli()
	if now < g.lastTime {
		// Clock went backwards; keep counting from the last timestamp.
		now = g.lastTime
	}

	if now == g.lastTime {
		g.counter++
		if g.counter > 0x0FFF {
			now++
			g.counter = 0
		}
	} else {
		g.counter = 0
	}
	g.lastTime = now

	return newUUIDv7(now, g.counter).String()
}

// newUUIDv7 lays out a 48-bit millisecond timestamp, the version nibble, a
// 12-bit counter and 62 random bits.
func newUUIDv7(unixMilli int64, counter uint16) uuid.UUID {
	var id uuid.UUID

	binary.BigEndian.PutUint32(id[0:4], uint32(unixMilli>>16))
	binary.BigEndian.PutUint16(id[4:6], uint16(unixMilli))

	id[6] = 0x70 | byte(counter>>8)&0x0F
	id[7] = byte(counter)

	_, _ = rand.Read(id[8:])
	id[8] = id[8]&0x3F | 0x80

	return id
}

// ParseID validates a UUID string and returns its canonical form.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}

// IsValidID reports whether s is a well-formed UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
