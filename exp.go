//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

package mpi

// montInverse computes m' = -n0^-1 mod 2^LimbBits for an odd n0 with
// Newton's iteration. The constant clears the low limb on every
// Montgomery reduction step.
func montInverse(n0 Limb) Limb {
	x := n0
	x += ((n0 + 2) & 4) << 1
	for i := LimbBits; i >= 8; i /= 2 {
		x *= 2 - n0*x
	}
	return ^x + 1
}

// montMul computes d = a*b*R^-1 mod n where R = 2^(LimbBits*len(n)).
// The operands a and b must be in the range [0, n) and d, a, and b
// must all have exactly len(n) limbs; d may alias a or b. The scratch
// buffer t must have len(n)+2 limbs. The final subtraction of n is
// done with masked selection so that it does not leak whether the
// reduction was needed.
func montMul(d, a, b, n []Limb, m0 Limb, t []Limb) {
	k := len(n)
	t = t[:k+2]
	zeroize(t)

	for i := 0; i < k; i++ {
		ai := a[i]

		// t += a[i] * b
		var c Limb
		for j := 0; j < k; j++ {
			hi, lo := limbMul(ai, b[j])
			var cc Limb
			lo, cc = limbAdd(lo, t[j], 0)
			hi += cc
			lo, cc = limbAdd(lo, c, 0)
			hi += cc
			t[j] = lo
			c = hi
		}
		var cc Limb
		t[k], cc = limbAdd(t[k], c, 0)
		t[k+1] += cc

		// t += u * n clears t[0].
		u := t[0] * m0
		c = 0
		for j := 0; j < k; j++ {
			hi, lo := limbMul(u, n[j])
			var cc2 Limb
			lo, cc2 = limbAdd(lo, t[j], 0)
			hi += cc2
			lo, cc2 = limbAdd(lo, c, 0)
			hi += cc2
			t[j] = lo
			c = hi
		}
		t[k], cc = limbAdd(t[k], c, 0)
		t[k+1] += cc

		// t /= 2^LimbBits
		copy(t, t[1:k+2])
		t[k+1] = 0
	}

	// 0 <= t < 2n: subtract n once and select the in-range value.
	var borrow Limb
	for j := 0; j < k; j++ {
		d[j], borrow = limbSub(t[j], n[j], borrow)
	}
	_, borrow = limbSub(t[k], 0, borrow)

	// borrow is 1 iff t < n.
	for j := 0; j < k; j++ {
		d[j] = ctSelect(uint(borrow), d[j], t[j])
	}
}

// expWindowSize returns the sliding window size for an exponent of
// ebits bits.
func expWindowSize(ebits int) int {
	var wsize int
	switch {
	case ebits > 671:
		wsize = 6
	case ebits > 239:
		wsize = 5
	case ebits > 79:
		wsize = 4
	case ebits > 23:
		wsize = 3
	default:
		wsize = 1
	}
	if wsize > WindowSize {
		wsize = WindowSize
	}
	return wsize
}

// ExpMod sets z to a^e mod n using sliding-window exponentiation over
// Montgomery multiplication. The modulus n must be positive and odd;
// even moduli are rejected with ErrBadInputData since the Montgomery
// reduction does not support them. The exponent e must be
// non-negative.
//
// The optional rr caches R^2 mod n between calls with the same
// modulus: pass a zero-valued Int on the first call and the same Int
// on subsequent calls. The cache is caller-owned state; the function
// does not detect a modulus change, so the caller must reset the
// cache when n changes.
func (z *Int) ExpMod(a, e, n, rr *Int) error {
	if n.CmpInt(0) <= 0 || n.Bit(0) == 0 {
		return ErrBadInputData
	}
	if e.CmpInt(0) < 0 {
		return ErrBadInputData
	}

	k := n.sig()
	nl := n.limbs[:k]
	m0 := montInverse(nl[0])

	wsize := expWindowSize(e.BitLen())

	// R^2 mod n, from the cache when available.
	var rrv Int
	defer rrv.Free()
	if rr != nil && !rr.IsZero() {
		if err := rrv.Set(rr); err != nil {
			return err
		}
	} else {
		if err := rrv.SetInt64(1); err != nil {
			return err
		}
		if err := rrv.shiftL(k * 2 * LimbBits); err != nil {
			return err
		}
		if err := rrv.Mod(&rrv, n); err != nil {
			return err
		}
		if rr != nil {
			if err := rr.Set(&rrv); err != nil {
				return err
			}
		}
	}
	if err := rrv.Grow(k); err != nil {
		return err
	}
	rrl := rrv.limbs[:k]

	// w1 = |a| mod n, converted to Montgomery form.
	neg := a.sign() < 0
	var w1 Int
	defer w1.Free()
	if err := w1.Set(a); err != nil {
		return err
	}
	w1.s = 1
	if w1.Cmp(n) >= 0 {
		if err := w1.Mod(&w1, n); err != nil {
			return err
		}
	}
	if err := w1.Grow(k); err != nil {
		return err
	}

	scratch := make([]Limb, k+2)
	defer zeroize(scratch)

	one := make([]Limb, k)
	one[0] = 1

	table := make([][]Limb, 1<<uint(wsize))
	table[1] = w1.limbs[:k]
	montMul(table[1], table[1], rrl, nl, m0, scratch)

	// x = R mod n, the Montgomery form of 1.
	x := make([]Limb, k)
	defer zeroize(x)
	montMul(x, rrl, one, nl, m0, scratch)

	if wsize > 1 {
		// Precompute the powers w1^(2^(wsize-1)) .. w1^(2^wsize - 1):
		// every full window starts with a 1 bit.
		j := 1 << uint(wsize-1)
		table[j] = make([]Limb, k)
		copy(table[j], table[1])
		for i := 0; i < wsize-1; i++ {
			montMul(table[j], table[j], table[j], nl, m0, scratch)
		}
		for i := j + 1; i < 1<<uint(wsize); i++ {
			table[i] = make([]Limb, k)
			montMul(table[i], table[i-1], table[1], nl, m0, scratch)
		}
		defer func() {
			for i := j; i < 1<<uint(wsize); i++ {
				zeroize(table[i])
			}
		}()
	}

	// Scan the exponent from the most significant bit, collecting
	// windows of up to wsize bits that start with a 1 bit.
	var state, nbits, wbits int
	nblimbs := e.sig()
	bufsize := 0
	for {
		if bufsize == 0 {
			if nblimbs == 0 {
				break
			}
			nblimbs--
			bufsize = LimbBits
		}
		bufsize--

		ei := int(e.limbs[nblimbs]>>uint(bufsize)) & 1

		if ei == 0 && state == 0 {
			// Leading zero bits.
			continue
		}
		if ei == 0 && state == 1 {
			// Zero bit outside a window: square only.
			montMul(x, x, x, nl, m0, scratch)
			continue
		}

		state = 2
		nbits++
		wbits |= ei << uint(wsize-nbits)

		if nbits == wsize {
			for i := 0; i < wsize; i++ {
				montMul(x, x, x, nl, m0, scratch)
			}
			montMul(x, x, table[wbits], nl, m0, scratch)

			state = 1
			nbits = 0
			wbits = 0
		}
	}

	// Process the remaining window bits.
	for i := 0; i < nbits; i++ {
		montMul(x, x, x, nl, m0, scratch)

		wbits <<= 1
		if wbits&(1<<uint(wsize)) != 0 {
			montMul(x, x, table[1], nl, m0, scratch)
		}
	}

	// Convert back from Montgomery form.
	montMul(x, x, one, nl, m0, scratch)

	if err := z.Grow(k); err != nil {
		return err
	}
	zeroize(z.limbs)
	copy(z.limbs, x)
	z.s = 1

	if neg && e.Bit(0) == 1 && !z.IsZero() {
		z.s = -1
		if err := z.Add(n, z); err != nil {
			return err
		}
	}
	z.fixZeroSign()
	return nil
}
