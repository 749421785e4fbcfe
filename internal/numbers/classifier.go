// Package numbers classifies integers for the per-game statistics.
// Every predicate is pure and defined for all ints, including zero and negatives.
package numbers

// IsPrime reports whether n is prime, by 6k±1 trial division up to sqrt(n)
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	if n%3 == 0 {
		return n == 3
	}
	// d <= n/d instead of d*d <= n: the square overflows near MaxInt64
	for d := 5; d <= n/d; d += 6 {
		if n%d == 0 || n%(d+2) == 0 {
			return false
		}
	}
	return true
}

// IsFibonacci reports whether n is a non-negative Fibonacci number by walking
// the sequence; only 93 terms fit in an int64, so the walk is short and never
// squares n
func IsFibonacci(n int) bool {
	if n < 0 {
		return false
	}
	a, b := 0, 1
	for a < n {
		if b < a {
			// the next term overflowed: n is past the largest representable term
			return false
		}
		a, b = b, a+b
	}
	return a == n
}

// IsMultipleOf3 reports whether n is divisible by 3
func IsMultipleOf3(n int) bool {
	return n%3 == 0
}

// IsEven reports whether n is even
func IsEven(n int) bool {
	return n%2 == 0
}
