// Package hashing derives the independent random number streams a data set
// is sampled from.
package hashing

// XorShift generates a predictable random-ish hash from the given integer.
// http://vigna.di.unimi.it/ftp/papers/xorshift.pdf
func XorShift(i uint64) uint64 {
	i ^= i >> 12
	i ^= i << 25
	i ^= i >> 27
	return i * 2685821657736338717
}

// Fnv1a64 returns a 64 bit hash of the given data using the FNV-1a hashing
// algorithm.
func Fnv1a64(data []byte) uint64 {
	var hash uint64 = 14695981039346656037
	for _, d := range data {
		hash = (hash ^ uint64(d)) * 1099511628211
	}
	return hash
}

// StreamSeed derives the seed of a single metric's stream from the run
// seed and the metric key.  The values drawn for one metric never depend
// on which other metrics were sampled or in what order.
func StreamSeed(seed int64, key string) uint64 {
	return XorShift(Fnv1a64([]byte(key)) ^ uint64(seed))
}
