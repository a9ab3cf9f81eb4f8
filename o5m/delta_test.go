package o5m

import (
	"testing"

	"github.com/hauke96/vadeenosm/internal/assert"
)

func TestDeltaBank_encodeDecodeRoundTrip(t *testing.T) {
	enc := &deltaBank{}
	dec := &deltaBank{}

	values := []int64{100, 105, 90, -50, 0, 1000000}
	for _, v := range values {
		d := enc.encode(registerID, v)
		got := dec.decode(registerID, d)
		assert.Equal(t, v, got)
	}
}

func TestDeltaBank_registersAreIndependent(t *testing.T) {
	bank := &deltaBank{}
	bank.encode(registerLat, 10)
	bank.encode(registerLon, 20)

	assert.Equal(t, int64(5), bank.encode(registerLat, 15))
	assert.Equal(t, int64(5), bank.encode(registerLon, 25))
}

func TestDeltaBank_reset(t *testing.T) {
	bank := &deltaBank{}
	bank.encode(registerID, 42)
	bank.reset()

	assert.Equal(t, int64(0), bank.encode(registerID, 0))
}
