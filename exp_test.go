//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

package mpi

import (
	"testing"

	"github.com/markkurossi/mpi/drbg"
)

func TestExpModSmall(t *testing.T) {
	var x Int
	a := NewInt(4)
	e := NewInt(13)
	n := NewInt(497)

	if err := x.ExpMod(a, e, n, nil); err != nil {
		t.Fatalf("ExpMod failed: %v", err)
	}
	if x.Int64() != 445 {
		t.Errorf("4^13 mod 497 = %v, expected 445", x.Int64())
	}
}

func TestExpModIdentities(t *testing.T) {
	rng, err := drbg.New([]byte("exp"))
	if err != nil {
		t.Fatalf("drbg.New failed: %v", err)
	}
	var a, n, x, expected Int

	for i := 0; i < 10; i++ {
		if err := a.FillRandom(rng, 16); err != nil {
			t.Fatalf("FillRandom failed: %v", err)
		}
		if err := n.FillRandom(rng, 16); err != nil {
			t.Fatalf("FillRandom failed: %v", err)
		}
		if err := n.SetBit(0, 1); err != nil {
			t.Fatalf("SetBit failed: %v", err)
		}
		if n.CmpInt(1) <= 0 {
			continue
		}

		// a^0 mod n = 1
		if err := x.ExpMod(&a, NewInt(0), &n, nil); err != nil {
			t.Fatalf("ExpMod failed: %v", err)
		}
		if x.CmpInt(1) != 0 {
			t.Errorf("a^0 mod n = %v, expected 1", &x)
		}

		// a^1 mod n = a mod n
		if err := x.ExpMod(&a, NewInt(1), &n, nil); err != nil {
			t.Fatalf("ExpMod failed: %v", err)
		}
		if err := expected.Mod(&a, &n); err != nil {
			t.Fatalf("Mod failed: %v", err)
		}
		if x.Cmp(&expected) != 0 {
			t.Errorf("a^1 mod n = %v, expected %v", &x, &expected)
		}
	}
}

// TestExpModSplit checks a^(e1+e2) = a^e1 * a^e2 (mod n).
func TestExpModSplit(t *testing.T) {
	rng, err := drbg.New([]byte("exp-split"))
	if err != nil {
		t.Fatalf("drbg.New failed: %v", err)
	}
	var a, e1, e2, e, n, x1, x2, x, check Int

	for i := 0; i < 5; i++ {
		if err := a.FillRandom(rng, 32); err != nil {
			t.Fatalf("FillRandom failed: %v", err)
		}
		if err := e1.FillRandom(rng, 32); err != nil {
			t.Fatalf("FillRandom failed: %v", err)
		}
		if err := e2.FillRandom(rng, 32); err != nil {
			t.Fatalf("FillRandom failed: %v", err)
		}
		if err := n.FillRandom(rng, 32); err != nil {
			t.Fatalf("FillRandom failed: %v", err)
		}
		if err := n.SetBit(0, 1); err != nil {
			t.Fatalf("SetBit failed: %v", err)
		}
		if err := e.Add(&e1, &e2); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		if err := x1.ExpMod(&a, &e1, &n, nil); err != nil {
			t.Fatalf("ExpMod failed: %v", err)
		}
		if err := x2.ExpMod(&a, &e2, &n, nil); err != nil {
			t.Fatalf("ExpMod failed: %v", err)
		}
		if err := x.ExpMod(&a, &e, &n, nil); err != nil {
			t.Fatalf("ExpMod failed: %v", err)
		}
		if err := check.Mul(&x1, &x2); err != nil {
			t.Fatalf("Mul failed: %v", err)
		}
		if err := check.Mod(&check, &n); err != nil {
			t.Fatalf("Mod failed: %v", err)
		}
		if x.Cmp(&check) != 0 {
			t.Errorf("a^(e1+e2) != a^e1 * a^e2 (mod n)")
		}
	}
}

func TestExpModNegativeBase(t *testing.T) {
	var x Int
	a := NewInt(-4)
	e := NewInt(13)
	n := NewInt(497)

	if err := x.ExpMod(a, e, n, nil); err != nil {
		t.Fatalf("ExpMod failed: %v", err)
	}
	// (-4)^13 = -(4^13): the result is the canonical residue
	// 497 - 445 = 52.
	if x.Int64() != 52 {
		t.Errorf("(-4)^13 mod 497 = %v, expected 52", x.Int64())
	}

	// An even exponent gives a positive result.
	e = NewInt(2)
	if err := x.ExpMod(a, e, n, nil); err != nil {
		t.Fatalf("ExpMod failed: %v", err)
	}
	if x.Int64() != 16 {
		t.Errorf("(-4)^2 mod 497 = %v, expected 16", x.Int64())
	}
}

func TestExpModBadInput(t *testing.T) {
	var x Int
	a := NewInt(4)
	e := NewInt(13)

	if err := x.ExpMod(a, e, NewInt(496), nil); err != ErrBadInputData {
		t.Errorf("even modulus: %v, expected %v", err, ErrBadInputData)
	}
	if err := x.ExpMod(a, e, NewInt(0), nil); err != ErrBadInputData {
		t.Errorf("zero modulus: %v, expected %v", err, ErrBadInputData)
	}
	if err := x.ExpMod(a, e, NewInt(-497), nil); err != ErrBadInputData {
		t.Errorf("negative modulus: %v, expected %v", err, ErrBadInputData)
	}
	if err := x.ExpMod(a, NewInt(-1), NewInt(497), nil); err != ErrBadInputData {
		t.Errorf("negative exponent: %v, expected %v", err, ErrBadInputData)
	}
}

func TestExpModRRCache(t *testing.T) {
	rng, err := drbg.New([]byte("exp-rr"))
	if err != nil {
		t.Fatalf("drbg.New failed: %v", err)
	}
	var a, e, n, x1, x2, rr Int

	if err := a.FillRandom(rng, 64); err != nil {
		t.Fatalf("FillRandom failed: %v", err)
	}
	if err := e.FillRandom(rng, 64); err != nil {
		t.Fatalf("FillRandom failed: %v", err)
	}
	if err := n.FillRandom(rng, 64); err != nil {
		t.Fatalf("FillRandom failed: %v", err)
	}
	if err := n.SetBit(0, 1); err != nil {
		t.Fatalf("SetBit failed: %v", err)
	}

	if err := x1.ExpMod(&a, &e, &n, &rr); err != nil {
		t.Fatalf("ExpMod failed: %v", err)
	}
	if rr.IsZero() {
		t.Errorf("RR cache was not populated")
	}
	// The second call reuses the cache.
	if err := x2.ExpMod(&a, &e, &n, &rr); err != nil {
		t.Fatalf("ExpMod failed: %v", err)
	}
	if x1.Cmp(&x2) != 0 {
		t.Errorf("cached ExpMod: %v, expected %v", &x2, &x1)
	}
}

// TestExpModLarge computes a modular exponentiation with random
// 1024-bit base, exponent, and odd modulus, and checks the result against the same computation done with square and
// multiply over Mul and Mod.
func TestExpModLarge(t *testing.T) {
	rng, err := drbg.New([]byte("exp-large"))
	if err != nil {
		t.Fatalf("drbg.New failed: %v", err)
	}
	var a, e, n, x, ref Int

	if err := a.FillRandom(rng, 128); err != nil {
		t.Fatalf("FillRandom failed: %v", err)
	}
	if err := e.FillRandom(rng, 128); err != nil {
		t.Fatalf("FillRandom failed: %v", err)
	}
	if err := n.FillRandom(rng, 128); err != nil {
		t.Fatalf("FillRandom failed: %v", err)
	}
	if err := n.SetBit(0, 1); err != nil {
		t.Fatalf("SetBit failed: %v", err)
	}

	if err := x.ExpMod(&a, &e, &n, nil); err != nil {
		t.Fatalf("ExpMod failed: %v", err)
	}

	// Square and multiply from the most significant bit.
	if err := ref.SetInt64(1); err != nil {
		t.Fatalf("SetInt64 failed: %v", err)
	}
	for i := e.BitLen() - 1; i >= 0; i-- {
		if err := ref.Mul(&ref, &ref); err != nil {
			t.Fatalf("Mul failed: %v", err)
		}
		if err := ref.Mod(&ref, &n); err != nil {
			t.Fatalf("Mod failed: %v", err)
		}
		if e.Bit(i) == 1 {
			if err := ref.Mul(&ref, &a); err != nil {
				t.Fatalf("Mul failed: %v", err)
			}
			if err := ref.Mod(&ref, &n); err != nil {
				t.Fatalf("Mod failed: %v", err)
			}
		}
	}
	if x.Cmp(&ref) != 0 {
		t.Errorf("ExpMod disagrees with square and multiply")
	}
}

func BenchmarkExpMod(b *testing.B) {
	rng, err := drbg.New([]byte("bench"))
	if err != nil {
		b.Fatalf("drbg.New failed: %v", err)
	}
	var a, e, n, x, rr Int

	if err := a.FillRandom(rng, 128); err != nil {
		b.Fatalf("FillRandom failed: %v", err)
	}
	if err := e.FillRandom(rng, 128); err != nil {
		b.Fatalf("FillRandom failed: %v", err)
	}
	if err := n.FillRandom(rng, 128); err != nil {
		b.Fatalf("FillRandom failed: %v", err)
	}
	if err := n.SetBit(0, 1); err != nil {
		b.Fatalf("SetBit failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := x.ExpMod(&a, &e, &n, &rr); err != nil {
			b.Fatalf("ExpMod failed: %v", err)
		}
	}
}

func BenchmarkMul(b *testing.B) {
	rng, err := drbg.New([]byte("bench-mul"))
	if err != nil {
		b.Fatalf("drbg.New failed: %v", err)
	}
	var x, y, r Int

	if err := x.FillRandom(rng, 128); err != nil {
		b.Fatalf("FillRandom failed: %v", err)
	}
	if err := y.FillRandom(rng, 128); err != nil {
		b.Fatalf("FillRandom failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Mul(&x, &y); err != nil {
			b.Fatalf("Mul failed: %v", err)
		}
	}
}
