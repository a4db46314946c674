package structs

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomCost(rng *rand.Rand) TimeCost {
	return TimeCost{
		WalkTime:  rng.Float64() * 3600,
		BusTime:   rng.Float64() * 3600,
		WaitTime:  rng.Float64() * 3600,
		Transfers: uint32(rng.Intn(5)),
	}
}

func TestTimeCostAdditiveTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := randomCost(rng)
		b := randomCost(rng)
		c := randomCost(rng)

		assert.InDelta(t, a.Total()+b.Total(), a.Add(b).Total(), 1e-9)
		assert.Equal(t, a.Add(b), b.Add(a))

		left := a.Add(b).Add(c)
		right := a.Add(b.Add(c))
		assert.InDelta(t, left.WalkTime, right.WalkTime, 1e-9)
		assert.InDelta(t, left.BusTime, right.BusTime, 1e-9)
		assert.InDelta(t, left.WaitTime, right.WaitTime, 1e-9)
		assert.Equal(t, left.Transfers, right.Transfers)
	}
}

func TestTimeCostZeroIdentity(t *testing.T) {
	a := TimeCost{WalkTime: 12, BusTime: 300, WaitTime: 450, Transfers: 1}
	assert.Equal(t, a, a.Add(TimeCost{}))
	assert.Equal(t, a, TimeCost{}.Add(a))
	assert.True(t, TimeCost{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestTimeCostHelpers(t *testing.T) {
	assert.Equal(t, TimeCost{WalkTime: 10}, OfWalking(10))
	assert.Equal(t, TimeCost{BusTime: 300, Transfers: 1}, OfBus(300))
	assert.Equal(t, TimeCost{WaitTime: 450}, OfWaiting(450))
	assert.Equal(t, 6.0, WithAll(2).Total())
	assert.Equal(t, uint32(0), WithAll(2).Transfers)
}

func TestTimeCostOrderingIgnoresTransfers(t *testing.T) {
	a := TimeCost{WalkTime: 100, Transfers: 0}
	b := TimeCost{BusTime: 50, WaitTime: 50, Transfers: 3}
	assert.Equal(t, 0, a.Compare(b))
	assert.False(t, a.Less(b))
	assert.False(t, b.Less(a))

	c := OfWalking(99)
	assert.True(t, c.Less(a))
	assert.Equal(t, 1, a.Compare(c))
}

func TestTimeCostNaNCompareEqual(t *testing.T) {
	nan := OfWalking(math.NaN())
	assert.NotPanics(t, func() {
		assert.Equal(t, 0, nan.Compare(OfWalking(5)))
		assert.Equal(t, 0, OfWalking(5).Compare(nan))
		assert.False(t, nan.Less(nan))
	})
}

func TestTimeCostSentinels(t *testing.T) {
	a := TimeCost{WalkTime: 10, BusTime: 20, WaitTime: 30}
	assert.True(t, a.Less(WorstTimeCost()))
	assert.True(t, BestTimeCost().Less(a))
	assert.Equal(t, a.WalkTime, WorstTimeCost().Min(a).WalkTime)
	assert.Equal(t, a.WaitTime, BestTimeCost().Max(a).WaitTime)
}
