//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

package mpi

// Gcd sets z to the greatest common divisor of x and y. The result is
// non-negative; Gcd of x and zero is |x|.
func (z *Int) Gcd(x, y *Int) error {
	if x.IsZero() {
		if err := z.Set(y); err != nil {
			return err
		}
		z.s = 1
		return nil
	}
	if y.IsZero() {
		if err := z.Set(x); err != nil {
			return err
		}
		z.s = 1
		return nil
	}

	var ta, tb Int
	defer ta.Free()
	defer tb.Free()

	if err := ta.Set(x); err != nil {
		return err
	}
	if err := tb.Set(y); err != nil {
		return err
	}
	ta.s = 1
	tb.s = 1

	// Strip the common power of two; it is reattached at the end.
	lz := ta.Lsb()
	if lzt := tb.Lsb(); lzt < lz {
		lz = lzt
	}
	if err := ta.shiftR(lz); err != nil {
		return err
	}
	if err := tb.shiftR(lz); err != nil {
		return err
	}

	for !ta.IsZero() {
		if err := ta.shiftR(ta.Lsb()); err != nil {
			return err
		}
		if err := tb.shiftR(tb.Lsb()); err != nil {
			return err
		}

		if ta.Cmp(&tb) >= 0 {
			if err := ta.SubAbs(&ta, &tb); err != nil {
				return err
			}
			if err := ta.shiftR(1); err != nil {
				return err
			}
		} else {
			if err := tb.SubAbs(&tb, &ta); err != nil {
				return err
			}
			if err := tb.shiftR(1); err != nil {
				return err
			}
		}
	}

	if err := tb.shiftL(lz); err != nil {
		return err
	}
	return z.Set(&tb)
}

// InvMod sets z to the modular inverse of x modulo n: the value in
// [0, n) for which x*z = 1 (mod n). It fails with ErrBadInputData if
// n <= 1 and with ErrNotAcceptable if x has no inverse modulo n.
func (z *Int) InvMod(x, n *Int) error {
	if n.CmpInt(1) <= 0 {
		return ErrBadInputData
	}

	var g Int
	defer g.Free()
	if err := g.Gcd(x, n); err != nil {
		return err
	}
	if g.CmpInt(1) != 0 {
		return ErrNotAcceptable
	}

	var ta, tu, tb, tv, u1, u2, v1, v2 Int
	defer ta.Free()
	defer tu.Free()
	defer tb.Free()
	defer tv.Free()
	defer u1.Free()
	defer u2.Free()
	defer v1.Free()
	defer v2.Free()

	if err := ta.Mod(x, n); err != nil {
		return err
	}
	if err := tu.Set(&ta); err != nil {
		return err
	}
	if err := tb.Set(n); err != nil {
		return err
	}
	if err := tv.Set(n); err != nil {
		return err
	}
	if err := u1.SetInt64(1); err != nil {
		return err
	}
	if err := u2.SetInt64(0); err != nil {
		return err
	}
	if err := v1.SetInt64(0); err != nil {
		return err
	}
	if err := v2.SetInt64(1); err != nil {
		return err
	}

	for {
		for tu.Bit(0) == 0 {
			if err := tu.shiftR(1); err != nil {
				return err
			}
			if u1.Bit(0) != 0 || u2.Bit(0) != 0 {
				if err := u1.Add(&u1, &tb); err != nil {
					return err
				}
				if err := u2.Sub(&u2, &ta); err != nil {
					return err
				}
			}
			if err := u1.shiftR(1); err != nil {
				return err
			}
			if err := u2.shiftR(1); err != nil {
				return err
			}
		}
		for tv.Bit(0) == 0 {
			if err := tv.shiftR(1); err != nil {
				return err
			}
			if v1.Bit(0) != 0 || v2.Bit(0) != 0 {
				if err := v1.Add(&v1, &tb); err != nil {
					return err
				}
				if err := v2.Sub(&v2, &ta); err != nil {
					return err
				}
			}
			if err := v1.shiftR(1); err != nil {
				return err
			}
			if err := v2.shiftR(1); err != nil {
				return err
			}
		}

		if tu.Cmp(&tv) >= 0 {
			if err := tu.Sub(&tu, &tv); err != nil {
				return err
			}
			if err := u1.Sub(&u1, &v1); err != nil {
				return err
			}
			if err := u2.Sub(&u2, &v2); err != nil {
				return err
			}
		} else {
			if err := tv.Sub(&tv, &tu); err != nil {
				return err
			}
			if err := v1.Sub(&v1, &u1); err != nil {
				return err
			}
			if err := v2.Sub(&v2, &u2); err != nil {
				return err
			}
		}

		if tu.IsZero() {
			break
		}
	}

	for v1.CmpInt(0) < 0 {
		if err := v1.Add(&v1, n); err != nil {
			return err
		}
	}
	for v1.Cmp(n) >= 0 {
		if err := v1.Sub(&v1, n); err != nil {
			return err
		}
	}
	return z.Set(&v1)
}
