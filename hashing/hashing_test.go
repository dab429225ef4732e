package hashing

import (
	"testing"
)

func TestFNV1a64(t *testing.T) {
	data := map[string]uint64{
		"foobar":  0x85944171f73967e8,
		"changed": 0xdf38879af614707b,
		"5min.prod.dc06.graphite-web006-g6.kernel.net.netfilter.nf_conntrack_max": 0xdb7b58ef171eee9f,
	}

	for s, hash := range data {
		if Fnv1a64([]byte(s)) != hash {
			t.Errorf("FNV1a64 implementation does not match reference %s => %x",
				s, Fnv1a64([]byte(s)))
		}
	}
}

func TestXorShift(t *testing.T) {
	if XorShift(0) != 0 {
		t.Errorf("XorShift(0) = %d", XorShift(0))
	}
	if XorShift(42) != XorShift(42) {
		t.Errorf("XorShift is not deterministic")
	}
	if XorShift(1) == XorShift(2) {
		t.Errorf("XorShift collides on 1 and 2")
	}
}

func TestStreamSeed(t *testing.T) {
	keys := []string{"crashes", "cpu", "memory", "paging", "iops", "io_queue"}

	for _, seed := range []int64{0, 1, -1, 1735689600} {
		seen := make(map[uint64]string)
		for _, k := range keys {
			s := StreamSeed(seed, k)
			if other, ok := seen[s]; ok {
				t.Errorf("seed %d: %s and %s share stream seed %x", seed, k, other, s)
			}
			seen[s] = k
			if s != StreamSeed(seed, k) {
				t.Errorf("seed %d: stream seed of %s is not stable", seed, k)
			}
		}
	}

	if StreamSeed(1, "cpu") == StreamSeed(2, "cpu") {
		t.Errorf("run seed does not change the stream")
	}
}
