package chooser

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// byteSeq replays a fixed byte sequence, cycling when exhausted.
type byteSeq struct {
	b   []byte
	pos int
}

func (s *byteSeq) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = s.b[s.pos%len(s.b)]
		s.pos++
	}
	return len(p), nil
}

type failingReader struct{ calls int }

func (f *failingReader) Read([]byte) (int, error) {
	f.calls++
	return 0, errors.New("entropy pool closed")
}

// fixedRNG always returns the same float.
type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }

func chacha(seed byte) *rand.ChaCha8 {
	var s [32]byte
	s[0] = seed
	return rand.NewChaCha8(s)
}

func TestChooseEmpty(t *testing.T) {
	_, err := Choose(Default(), []string{})
	require.ErrorIs(t, err, ErrNoCandidates)

	_, err = Choose[int](Default(), nil)
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestChooseSingleCandidate(t *testing.T) {
	r := &failingReader{}
	c := New(r, fixedRNG(0.99))
	for i := 0; i < 1000; i++ {
		got, err := Choose(c, []string{"yes"})
		require.NoError(t, err)
		require.Equal(t, "yes", got)
	}
	assert.Zero(t, r.calls, "single candidate must not consume entropy")
}

func TestSecureRejectsOutOfRange(t *testing.T) {
	// n=5 masks to 3 bits: 7, 6 and 5 are rejected, 2 is accepted
	src := &byteSeq{b: []byte{7, 6, 5, 2}}
	c := New(src, fixedRNG(0))
	i, err := c.Index(5)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, 4, src.pos)
}

func TestSecureAlwaysInRange(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	for _, n := range []int{2, 3, 4, 5, 7, 100, 255, 256, 257, 1000, 70000} {
		c := New(&byteSeq{b: all}, fixedRNG(0))
		for k := 0; k < 2000; k++ {
			i, err := c.Index(n)
			require.NoError(t, err)
			require.GreaterOrEqual(t, i, 0)
			require.Less(t, i, n, "n=%d", n)
		}
	}
}

func TestSecureNoModuloBias(t *testing.T) {
	// every byte value once per cycle; with n=3 the masked values cycle
	// through 0,1,2,3 and 3 is rejected, so each index is hit equally
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	c := New(&byteSeq{b: all}, fixedRNG(0))
	counts := make([]int, 3)
	for k := 0; k < 192; k++ {
		i, err := c.Index(3)
		require.NoError(t, err)
		counts[i]++
	}
	assert.Equal(t, []int{64, 64, 64}, counts)
}

func TestSecureMultiByteLittleEndian(t *testing.T) {
	// n=300 needs 9 bits over 2 bytes: 0x01 0x01 => 257
	c := New(&byteSeq{b: []byte{0x01, 0x01}}, fixedRNG(0))
	i, err := c.Index(300)
	require.NoError(t, err)
	assert.Equal(t, 257, i)
}

func TestFallbackOnReaderError(t *testing.T) {
	r := &failingReader{}
	c := New(r, fixedRNG(0.5))
	i, err := c.Index(4)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, 1, r.calls)
}

func TestFallbackOnStuckSource(t *testing.T) {
	c := New(&byteSeq{b: []byte{0xff}}, fixedRNG(0.1))
	i, err := c.Index(3)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
}

func TestFallbackClampsOne(t *testing.T) {
	c := New(nil, fixedRNG(1))
	i, err := c.Index(4)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}

func TestDuplicatesWeighted(t *testing.T) {
	c := New(chacha(9), nil)
	choices := []string{"yes", "yes", "yes", "no"}
	yes := 0
	const n = 40000
	for i := 0; i < n; i++ {
		v, err := Choose(c, choices)
		require.NoError(t, err)
		if v == "yes" {
			yes++
		}
	}
	assert.InDelta(t, 0.75, float64(yes)/n, 0.02)
}

func TestFallbackHook(t *testing.T) {
	calls := 0
	c := New(nil, NewSeededRNG(1)).WithFallbackHook(func() { calls++ })
	for i := 0; i < 5; i++ {
		_, err := c.Index(2)
		require.NoError(t, err)
	}
	// single candidate never reaches a source
	_, err := c.Index(1)
	require.NoError(t, err)
	assert.Equal(t, 5, calls)

	calls = 0
	c = New(chacha(1), nil).WithFallbackHook(func() { calls++ })
	_, err = c.Index(6)
	require.NoError(t, err)
	assert.Zero(t, calls)
}
