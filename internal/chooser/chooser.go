package chooser

import (
	cryptoRand "crypto/rand"
	"errors"
	"io"
	"math"
	"math/bits"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrNoCandidates is returned when asked to choose from an empty list.
// Callers are expected to validate their lists before choosing.
var ErrNoCandidates = errors.New("no candidates to choose from; list must not be empty")

var errTooManyRejections = errors.New("secure source produced no in-range value")

// maxRejections bounds the rejection loop. Each draw is accepted with
// probability > 1/2, so a healthy source never gets near it.
const maxRejections = 64

// Chooser picks indexes uniformly at random.
//
// The secure source is read for the minimal number of bytes covering the
// range, assembled little-endian and masked to the bit length of n-1. Values
// outside [0, n) are rejected and redrawn, so there is no modulo bias.
// When the secure source is missing or fails, the fallback RandomSource is
// scaled and floored instead.
type Chooser struct {
	secure   io.Reader
	fallback RandomSource

	log        logrus.FieldLogger
	warnOnce   sync.Once
	onFallback func()
}

// New creates a Chooser. A nil secure reader disables the secure path; a nil
// fallback defaults to DefaultRNG.
func New(secure io.Reader, fallback RandomSource) *Chooser {
	if fallback == nil {
		fallback = DefaultRNG()
	}
	return &Chooser{
		secure:   secure,
		fallback: fallback,
		log:      logrus.WithField("process", "chooser"),
	}
}

// Default returns a Chooser backed by crypto/rand with the math/rand/v2 fallback.
func Default() *Chooser { return New(cryptoRand.Reader, nil) }

// WithLogger replaces the logger used to report source degradation.
func (c *Chooser) WithLogger(log logrus.FieldLogger) *Chooser {
	if log != nil {
		c.log = log
	}
	return c
}

// WithFallbackHook registers fn to be called each time a choice is served
// by the fallback source.
func (c *Chooser) WithFallbackHook(fn func()) *Chooser {
	c.onFallback = fn
	return c
}

// Index returns an index in [0, n), each with probability 1/n.
func (c *Chooser) Index(n int) (int, error) {
	if n <= 0 {
		return 0, ErrNoCandidates
	}
	if n == 1 {
		return 0, nil
	}
	if c.secure != nil {
		i, err := c.secureIndex(n)
		if err == nil {
			return i, nil
		}
		c.degrade(err)
	}
	if c.onFallback != nil {
		c.onFallback()
	}
	return c.fallbackIndex(n), nil
}

func (c *Chooser) secureIndex(n int) (int, error) {
	limit := uint64(n - 1)
	width := bits.Len64(limit)
	size := (width + 7) / 8
	mask := uint64(1)<<uint(width) - 1

	var buf [8]byte
	for attempt := 0; attempt < maxRejections; attempt++ {
		if _, err := io.ReadFull(c.secure, buf[:size]); err != nil {
			return 0, err
		}
		var v uint64
		for i := 0; i < size; i++ {
			v |= uint64(buf[i]) << (8 * uint(i))
		}
		v &= mask
		if v <= limit {
			return int(v), nil
		}
	}
	return 0, errTooManyRejections
}

func (c *Chooser) fallbackIndex(n int) int {
	i := int(math.Floor(c.fallback.Float64() * float64(n)))
	// guard against sources that return exactly 1
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (c *Chooser) degrade(err error) {
	c.warnOnce.Do(func() {
		c.log.WithError(err).Warn("secure random source unavailable, falling back to pseudorandom")
	})
}

// Choose returns one of candidates selected uniformly at random.
// Duplicated values are chosen proportionally to how often they appear.
// A nil Chooser uses Default.
func Choose[T any](c *Chooser, candidates []T) (T, error) {
	var zero T
	if c == nil {
		c = Default()
	}
	i, err := c.Index(len(candidates))
	if err != nil {
		return zero, err
	}
	return candidates[i], nil
}
