package primes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func isPrime(n uint32) bool {
	if n < 2 {
		return false
	}
	for i := uint32(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func TestGreatestPrimeLESmall(t *testing.T) {
	require.Equal(t, uint32(2), GreatestPrimeLE(0))
	require.Equal(t, uint32(2), GreatestPrimeLE(1))
	require.Equal(t, uint32(2), GreatestPrimeLE(2))
	require.Equal(t, uint32(3), GreatestPrimeLE(3))
	require.Equal(t, uint32(3), GreatestPrimeLE(4))
	require.Equal(t, uint32(7), GreatestPrimeLE(9))
	require.Equal(t, uint32(7), GreatestPrimeLE(10))
}

func TestGreatestPrimeLEIsPrimeAndNotExceeding(t *testing.T) {
	for _, limit := range []uint32{16, 17, 100, 1021, 1024, 8191, 65536, 1 << 20} {
		p := GreatestPrimeLE(limit)
		require.LessOrEqual(t, p, limit)
		require.True(t, isPrime(p), "GreatestPrimeLE(%d) = %d is not prime", limit, p)
	}
}
