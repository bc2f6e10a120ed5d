package ulid

import (
	"io"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once

	// Crockford's Base32 (excludes I, L, O, and U).
	ulidPattern = regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)
)

// DefaultEntropy returns a process-wide reader that generates ULID entropy.
// It is safe for concurrent use.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// SeededEntropy returns a monotonic entropy source derived from seed.
// Two sources with the same seed yield the same sequence, which makes
// identifiers reproducible when combined with a fixed clock.
//
// The returned reader is not safe for concurrent use.
func SeededEntropy(seed int64) io.Reader {
	return ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// ValidID checks if the given id is a canonical ULID:
//
//	 01AN4Z07BY      79KA1307SR9X4MV3
//	|----------|    |----------------|
//	 Timestamp          Randomness
func ValidID(id string) bool {
	if !ulidPattern.MatchString(id) {
		return false
	}
	_, err := ulid.Parse(id)
	return err == nil
}

// Make builds a ULID string for the given time using entropy.
func Make(t time.Time, entropy io.Reader) string {
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
