//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

package mpi

// mulAddRow computes d += s*b, propagating the final carry into the
// limbs of d above len(s). The destination must have room for the
// carry.
func mulAddRow(d, s []Limb, b Limb) {
	var c Limb
	for i, sv := range s {
		hi, lo := limbMul(sv, b)
		var cc Limb
		lo, cc = limbAdd(lo, c, 0)
		hi += cc
		lo, cc = limbAdd(lo, d[i], 0)
		hi += cc
		d[i] = lo
		c = hi
	}
	for i := len(s); c != 0; i++ {
		d[i], c = limbAdd(d[i], c, 0)
	}
}

// Mul sets z to x * y using schoolbook multiplication.
func (z *Int) Mul(x, y *Int) error {
	i := x.sig()
	j := y.sig()

	var ta, tb Int
	if z == x {
		if err := ta.Set(x); err != nil {
			return err
		}
		if x == y {
			y = &ta
		}
		x = &ta
		defer ta.Free()
	}
	if z == y {
		if err := tb.Set(y); err != nil {
			return err
		}
		y = &tb
		defer tb.Free()
	}

	if err := z.Grow(i + j); err != nil {
		return err
	}
	zeroize(z.limbs)

	for k := j; k > 0; k-- {
		mulAddRow(z.limbs[k-1:], x.limbs[:i], y.limbs[k-1])
	}

	z.s = x.sign() * y.sign()
	z.fixZeroSign()
	return nil
}

// MulInt sets z to x * y where y is an unsigned limb value.
func (z *Int) MulInt(x *Int, y Limb) error {
	var t Int
	if err := t.Grow(1); err != nil {
		return err
	}
	t.limbs[0] = y
	t.s = 1
	return z.Mul(x, &t)
}
