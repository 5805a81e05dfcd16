package tweet

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// IDLength is the number of digits in a generated post ID.
const IDLength = 16

// IDGenerator produces plausible post IDs: the current Unix time in
// milliseconds followed by random digits. It is not safe for concurrent use;
// give every goroutine its own generator.
type IDGenerator struct {
	now  func() time.Time
	rand *rand.Rand
}

// NewIDGenerator creates a generator reading the time from now and digits
// from a source seeded with seed, so runs with a fixed clock and seed are
// reproducible.
func NewIDGenerator(now func() time.Time, seed int64) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{
		now:  now,
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (g *IDGenerator) Now() time.Time {
	return g.now()
}

// Next returns a new ID of IDLength decimal digits.
func (g *IDGenerator) Next() string {
	var id strings.Builder
	id.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))
	for id.Len() < IDLength {
		id.WriteByte(byte('0' + g.rand.Intn(10)))
	}
	return id.String()
}
