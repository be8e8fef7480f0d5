//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

package mpi

import (
	"io"
)

// The odd primes below 1000, used for trial division before the
// Miller-Rabin rounds.
var smallPrimes = []int64{
	3, 5, 7, 11, 13, 17, 19, 23,
	29, 31, 37, 41, 43, 47, 53, 59,
	61, 67, 71, 73, 79, 83, 89, 97,
	101, 103, 107, 109, 113, 127, 131, 137,
	139, 149, 151, 157, 163, 167, 173, 179,
	181, 191, 193, 197, 199, 211, 223, 227,
	229, 233, 239, 241, 251, 257, 263, 269,
	271, 277, 281, 283, 293, 307, 311, 313,
	317, 331, 337, 347, 349, 353, 359, 367,
	373, 379, 383, 389, 397, 401, 409, 419,
	421, 431, 433, 439, 443, 449, 457, 461,
	463, 467, 479, 487, 491, 499, 503, 509,
	521, 523, 541, 547, 557, 563, 569, 571,
	577, 587, 593, 599, 601, 607, 613, 617,
	619, 631, 641, 643, 647, 653, 659, 661,
	673, 677, 683, 691, 701, 709, 719, 727,
	733, 739, 743, 751, 757, 761, 769, 773,
	787, 797, 809, 811, 821, 823, 827, 829,
	839, 853, 857, 859, 863, 877, 881, 883,
	887, 907, 911, 919, 929, 937, 941, 947,
	953, 967, 971, 977, 983, 991, 997,
}

// checkSmallFactors does trial division of x against the small prime
// table. It returns true if x itself is one of the small primes,
// ErrNotAcceptable if a factor was found, and false, nil if no small
// factor divides x.
func checkSmallFactors(x *Int) (bool, error) {
	if x.Bit(0) == 0 {
		return false, ErrNotAcceptable
	}
	for _, p := range smallPrimes {
		if x.CmpInt(p) <= 0 {
			return true, nil
		}
		r, err := ModInt(x, p)
		if err != nil {
			return false, err
		}
		if r == 0 {
			return false, ErrNotAcceptable
		}
	}
	return false, nil
}

// millerRabinRounds returns the number of Miller-Rabin rounds for a
// candidate of bits bits so that the error probability is at most
// 2^-80, following the FIPS 186-4 tables.
func millerRabinRounds(bits int) int {
	switch {
	case bits >= 1450:
		return 4
	case bits >= 1150:
		return 5
	case bits >= 1000:
		return 6
	case bits >= 850:
		return 7
	case bits >= 750:
		return 8
	case bits >= 500:
		return 13
	case bits >= 250:
		return 28
	case bits >= 150:
		return 40
	default:
		return 51
	}
}

// millerRabin runs the Miller-Rabin rounds on x > 2 odd, drawing the
// witness bases from rand.
func millerRabin(x *Int, rand io.Reader) error {
	var w, r, t, a, rr Int
	defer w.Free()
	defer r.Free()
	defer t.Free()
	defer a.Free()
	defer rr.Free()

	// w = x - 1 = 2^s * r with r odd.
	if err := w.SubInt(x, 1); err != nil {
		return err
	}
	s := w.Lsb()
	if err := r.Set(&w); err != nil {
		return err
	}
	if err := r.shiftR(s); err != nil {
		return err
	}

	rounds := millerRabinRounds(x.BitLen())
	for round := 0; round < rounds; round++ {
		// Pick a base 1 < a < x-1.
		count := 0
		for {
			if err := a.FillRandom(rand, x.Size()); err != nil {
				return err
			}
			if j := a.BitLen(); j > w.BitLen() {
				if err := a.shiftR(j - w.BitLen()); err != nil {
					return err
				}
			}
			count++
			if count > 30 {
				return ErrNotAcceptable
			}
			if a.Cmp(&w) < 0 && a.CmpInt(1) > 0 {
				break
			}
		}

		// a = a^r mod x
		if err := a.ExpMod(&a, &r, x, &rr); err != nil {
			return err
		}
		if a.Cmp(&w) == 0 || a.CmpInt(1) == 0 {
			continue
		}

		i := 1
		for i < s && a.Cmp(&w) != 0 {
			// a = a^2 mod x
			if err := t.Mul(&a, &a); err != nil {
				return err
			}
			if err := a.Mod(&t, x); err != nil {
				return err
			}
			if a.CmpInt(1) == 0 {
				break
			}
			i++
		}

		// The composite witness condition.
		if a.Cmp(&w) != 0 || a.CmpInt(1) == 0 {
			return ErrNotAcceptable
		}
	}
	return nil
}

// IsPrime checks whether x is probably prime: trial division against
// the small prime table followed by Miller-Rabin rounds with bases
// from rand. It returns nil if x is probably prime and
// ErrNotAcceptable if x is composite. The sign of x is ignored.
func (x *Int) IsPrime(rand io.Reader) error {
	var xx Int
	defer xx.Free()
	if err := xx.Set(x); err != nil {
		return err
	}
	xx.s = 1

	if xx.CmpInt(0) == 0 || xx.CmpInt(1) == 0 {
		return ErrNotAcceptable
	}
	if xx.CmpInt(2) == 0 {
		return nil
	}

	small, err := checkSmallFactors(&xx)
	if err != nil {
		return err
	}
	if small {
		return nil
	}
	return millerRabin(&xx, rand)
}

// GenPrime generates a probable prime of exactly nbits bits into z,
// with 3 <= nbits <= MaxBits. The two top bits and the bottom bit of
// the candidate are forced to 1, so the product of two generated
// primes has exactly 2*nbits bits. With safe, the generated prime p
// also satisfies that (p-1)/2 is prime.
func (z *Int) GenPrime(nbits int, safe bool, rand io.Reader) error {
	if nbits < 3 || nbits > MaxBits {
		return ErrBadInputData
	}

	n := (nbits + LimbBits - 1) / LimbBits

	if err := z.FillRandom(rand, n*limbBytes); err != nil {
		return err
	}
	if k := z.BitLen(); k > nbits {
		if err := z.shiftR(k - nbits + 1); err != nil {
			return err
		}
	}
	if err := z.SetBit(nbits-1, 1); err != nil {
		return err
	}
	if err := z.SetBit(nbits-2, 1); err != nil {
		return err
	}
	z.limbs[0] |= 1

	if !safe {
		for {
			err := z.IsPrime(rand)
			if err == nil {
				return nil
			}
			if err != ErrNotAcceptable {
				return err
			}
			if err := z.AddInt(z, 2); err != nil {
				return err
			}
		}
	}

	// A necessary condition for y and z = 2y+1 to be prime is
	// z = 2 mod 3, so force it while keeping z = 3 mod 4.
	z.limbs[0] |= 2

	r, err := ModInt(z, 3)
	if err != nil {
		return err
	}
	if r == 0 {
		if err := z.AddInt(z, 8); err != nil {
			return err
		}
	} else if r == 1 {
		if err := z.AddInt(z, 4); err != nil {
			return err
		}
	}

	// y = (z-1)/2, which is z/2 because z is odd.
	var y Int
	defer y.Free()
	if err := y.Set(z); err != nil {
		return err
	}
	if err := y.shiftR(1); err != nil {
		return err
	}

	for {
		err := safePrimeRound(z, &y, rand)
		if err == nil {
			return nil
		}
		if err != ErrNotAcceptable {
			return err
		}

		// Step z by 12 and y by 6, preserving z = 3 mod 4 and
		// z = 2 mod 3.
		if err := z.AddInt(z, 12); err != nil {
			return err
		}
		if err := y.AddInt(&y, 6); err != nil {
			return err
		}
	}
}

// safePrimeRound tests the candidate pair z, y = (z-1)/2. The cheap
// trial divisions run on both values before any Miller-Rabin round.
func safePrimeRound(z, y *Int, rand io.Reader) error {
	if _, err := checkSmallFactors(z); err != nil {
		return err
	}
	if _, err := checkSmallFactors(y); err != nil {
		return err
	}
	if err := millerRabin(z, rand); err != nil {
		return err
	}
	return millerRabin(y, rand)
}
