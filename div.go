//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

package mpi

// Div divides x by y and sets q to the quotient and r to the
// remainder so that x = q*y + r and |r| < |y|. The quotient carries
// the sign of x*y and the remainder carries the sign of x. Either q
// or r can be nil if the value is not needed. Div fails with
// ErrDivisionByZero if y is zero.
func Div(q, r, x, y *Int) error {
	if y.IsZero() {
		return ErrDivisionByZero
	}

	if x.CmpAbs(y) < 0 {
		if q != nil {
			if err := q.SetInt64(0); err != nil {
				return err
			}
		}
		if r != nil {
			if err := r.Set(x); err != nil {
				return err
			}
		}
		return nil
	}

	var tx, ty, tz, t1, t2 Int
	defer tx.Free()
	defer ty.Free()
	defer tz.Free()
	defer t1.Free()
	defer t2.Free()

	if err := tx.Set(x); err != nil {
		return err
	}
	if err := ty.Set(y); err != nil {
		return err
	}
	tx.s = 1
	ty.s = 1

	if err := tz.Grow(x.sig() + 2); err != nil {
		return err
	}

	// Normalize the divisor so that the digit estimates below stay
	// close. The quotient is not affected and the remainder is
	// shifted back at the end.
	k := ty.BitLen() % LimbBits
	if k < LimbBits-1 {
		k = LimbBits - 1 - k
		if err := tx.shiftL(k); err != nil {
			return err
		}
		if err := ty.shiftL(k); err != nil {
			return err
		}
	} else {
		k = 0
	}

	n := tx.sig() - 1
	t := ty.sig() - 1

	if err := ty.shiftL(LimbBits * (n - t)); err != nil {
		return err
	}
	for tx.Cmp(&ty) >= 0 {
		tz.limbs[n-t]++
		if err := tx.Sub(&tx, &ty); err != nil {
			return err
		}
	}
	if err := ty.shiftR(LimbBits * (n - t)); err != nil {
		return err
	}

	for i := n; i > t; i-- {
		var qhat Limb
		if tx.limbs[i] >= ty.limbs[t] {
			qhat = ^Limb(0)
		} else {
			qhat, _ = limbDiv(tx.limbs[i], tx.limbs[i-1], ty.limbs[t])
		}

		// Refine the estimate with the top two divisor limbs against
		// the top three dividend limbs (Knuth D3).
		qhat++
		for {
			qhat--

			if err := t1.Grow(2); err != nil {
				return err
			}
			zeroize(t1.limbs)
			if t >= 1 {
				t1.limbs[0] = ty.limbs[t-1]
			}
			t1.limbs[1] = ty.limbs[t]
			t1.s = 1
			if err := t1.MulInt(&t1, qhat); err != nil {
				return err
			}

			if err := t2.Grow(3); err != nil {
				return err
			}
			zeroize(t2.limbs)
			if i >= 2 {
				t2.limbs[0] = tx.limbs[i-2]
			}
			t2.limbs[1] = tx.limbs[i-1]
			t2.limbs[2] = tx.limbs[i]
			t2.s = 1

			if t1.Cmp(&t2) <= 0 {
				break
			}
		}

		if err := t1.MulInt(&ty, qhat); err != nil {
			return err
		}
		if err := t1.shiftL(LimbBits * (i - t - 1)); err != nil {
			return err
		}
		if err := tx.Sub(&tx, &t1); err != nil {
			return err
		}

		if tx.CmpInt(0) < 0 {
			// The estimate was one too large: add back (Knuth D6).
			if err := t1.Set(&ty); err != nil {
				return err
			}
			if err := t1.shiftL(LimbBits * (i - t - 1)); err != nil {
				return err
			}
			if err := tx.Add(&tx, &t1); err != nil {
				return err
			}
			qhat--
		}
		tz.limbs[i-t-1] = qhat
	}

	if q != nil {
		if err := q.Set(&tz); err != nil {
			return err
		}
		q.s = x.sign() * y.sign()
		q.fixZeroSign()
	}
	if r != nil {
		if err := tx.shiftR(k); err != nil {
			return err
		}
		tx.s = x.sign()
		tx.fixZeroSign()
		if err := r.Set(&tx); err != nil {
			return err
		}
	}
	return nil
}

// DivInt divides x by the integer y. See Div.
func DivInt(q, r, x *Int, y int64) error {
	var t Int
	if err := t.SetInt64(y); err != nil {
		return err
	}
	return Div(q, r, x, &t)
}

// Mod sets z to x mod y with the result in the range [0, |y|). It
// fails with ErrNegativeValue if y is negative and with
// ErrDivisionByZero if y is zero.
func (z *Int) Mod(x, y *Int) error {
	if y.CmpInt(0) < 0 {
		return ErrNegativeValue
	}
	if err := Div(nil, z, x, y); err != nil {
		return err
	}
	for z.CmpInt(0) < 0 {
		if err := z.Add(z, y); err != nil {
			return err
		}
	}
	for z.Cmp(y) >= 0 {
		if err := z.Sub(z, y); err != nil {
			return err
		}
	}
	return nil
}

// ModInt returns x mod y for a positive integer y. The result is in
// the range [0, y) also for negative x.
func ModInt(x *Int, y int64) (int64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	if y < 0 {
		return 0, ErrNegativeValue
	}
	switch y {
	case 1:
		return 0, nil
	case 2:
		r := int64(x.Bit(0))
		if x.sign() < 0 && r != 0 {
			r = 2 - r
		}
		return r, nil
	}

	if uint64(y) <= uint64(^Limb(0)) {
		// The modulus fits in one limb: reduce limb by limb from the
		// most significant end.
		d := Limb(y)
		var rem Limb
		for i := x.sig(); i > 0; i-- {
			_, rem = limbDiv(rem, x.limbs[i-1], d)
		}
		r := int64(rem)
		if x.sign() < 0 && r != 0 {
			r = y - r
		}
		return r, nil
	}

	var t, r Int
	defer t.Free()
	defer r.Free()
	if err := t.SetInt64(y); err != nil {
		return 0, err
	}
	if err := r.Mod(x, &t); err != nil {
		return 0, err
	}
	return r.Int64(), nil
}
