package datagen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameStream(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Intn(1000000) == b.Intn(1000000) {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestForkIsDeterministicAndIndependent(t *testing.T) {
	f1 := New(42).Fork("shipments-2020")
	f2 := New(42).Fork("shipments-2020")
	other := New(42).Fork("shipments-2021")

	var s1, s2, s3 []int
	for i := 0; i < 50; i++ {
		s1 = append(s1, f1.Intn(1000000))
		s2 = append(s2, f2.Intn(1000000))
		s3 = append(s3, other.Intn(1000000))
	}
	assert.Equal(t, s1, s2)
	assert.NotEqual(t, s1, s3)
}

func TestIntRangeInclusive(t *testing.T) {
	f := New(7)
	sawMin, sawMax := false, false
	for i := 0; i < 1000; i++ {
		v := f.IntRange(3, 6)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 6)
		if v == 3 {
			sawMin = true
		}
		if v == 6 {
			sawMax = true
		}
	}
	assert.True(t, sawMin)
	assert.True(t, sawMax)
	assert.Equal(t, 5, f.IntRange(5, 5))
}

func TestFloat64Range(t *testing.T) {
	f := New(7)
	for i := 0; i < 1000; i++ {
		v := f.Float64Range(0.5, 1.5)
		require.GreaterOrEqual(t, v, 0.5)
		require.Less(t, v, 1.5)
	}
}

func TestLogNormalPositive(t *testing.T) {
	f := New(42)
	for i := 0; i < 1000; i++ {
		assert.Greater(t, f.LogNormal(9.59, 0.9), 0.0)
	}
}

func TestWeightedChooseRespectsWeights(t *testing.T) {
	f := New(42)
	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		counts[WeightedChoose(f, []string{"a", "b"}, []float64{0.9, 0.1})]++
	}
	assert.Greater(t, counts["a"], counts["b"]*3)
}

func TestDateBetween(t *testing.T) {
	f := New(42)
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		d := f.DateBetween(start, end)
		require.False(t, d.Before(start))
		require.False(t, d.After(end))
	}
	assert.Equal(t, start, f.DateBetween(start, start))
}

func TestCompanyEmail(t *testing.T) {
	f := New(1)
	assert.Equal(t, "mary.smith@example.com", f.CompanyEmail("Mary Smith", "example.com"))
}
