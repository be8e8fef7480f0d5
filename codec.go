//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

package mpi

// SetBytes sets z from the big-endian unsigned magnitude buf. The
// sign of z becomes +1.
func (z *Int) SetBytes(buf []byte) error {
	n := (len(buf) + limbBytes - 1) / limbBytes
	if err := z.Grow(n); err != nil {
		return err
	}
	zeroize(z.limbs)
	z.s = 1

	j := 0
	for i := len(buf); i > 0; i-- {
		z.limbs[j/limbBytes] |= Limb(buf[i-1]) << uint((j%limbBytes)*8)
		j++
	}
	return nil
}

// FillBytes writes the magnitude of z into buf as a big-endian
// unsigned value, left-padded with zeros. It fails with
// ErrBufferTooSmall if buf is smaller than Size bytes.
func (z *Int) FillBytes(buf []byte) error {
	n := z.Size()
	if len(buf) < n {
		return ErrBufferTooSmall
	}
	zeroizeBytes(buf)

	for i := 0; i < n; i++ {
		buf[len(buf)-1-i] = byte(z.limbs[i/limbBytes] >> uint((i%limbBytes)*8))
	}
	return nil
}

// Bytes returns the magnitude of z as a big-endian byte slice. The
// result of zero is an empty slice.
func (z *Int) Bytes() []byte {
	buf := make([]byte, z.Size())
	if err := z.FillBytes(buf); err != nil {
		panic(err)
	}
	return buf
}

// getDigit converts the character c to its digit value in the radix.
func getDigit(c byte, radix int) (Limb, error) {
	var d Limb
	switch {
	case c >= '0' && c <= '9':
		d = Limb(c - '0')
	case c >= 'a' && c <= 'f':
		d = Limb(c-'a') + 10
	case c >= 'A' && c <= 'F':
		d = Limb(c-'A') + 10
	default:
		return 0, ErrInvalidCharacter
	}
	if d >= Limb(radix) {
		return 0, ErrInvalidCharacter
	}
	return d, nil
}

// SetString sets z from the string s in the given radix. The radix
// must be in the range 2..16. A leading '-' makes the value negative;
// hexadecimal digits are case-insensitive. An empty string sets z to
// zero. On ErrInvalidCharacter z holds a partial value built from the
// digits parsed before the invalid character, not its previous value.
func (z *Int) SetString(s string, radix int) error {
	if radix < 2 || radix > 16 {
		return ErrBadInputData
	}

	start := 0
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		start = 1
	}

	if radix == 16 {
		slen := len(s) - start
		n := (slen*4 + LimbBits - 1) / LimbBits
		if err := z.Grow(n); err != nil {
			return err
		}
		if err := z.SetInt64(0); err != nil {
			return err
		}

		j := 0
		for i := len(s); i > start; i-- {
			d, err := getDigit(s[i-1], radix)
			if err != nil {
				return err
			}
			z.limbs[j/(limbBytes*2)] |= d << uint((j%(limbBytes*2))*4)
			j++
		}
	} else {
		if err := z.SetInt64(0); err != nil {
			return err
		}
		if neg {
			z.s = -1
		}

		var t Int
		defer t.Free()
		for i := start; i < len(s); i++ {
			d, err := getDigit(s[i], radix)
			if err != nil {
				return err
			}
			if err := t.MulInt(z, Limb(radix)); err != nil {
				return err
			}
			if z.sign() > 0 {
				if err := z.AddInt(&t, int64(d)); err != nil {
					return err
				}
			} else {
				// t inherited the negative sign; adding more digits
				// moves away from zero.
				if err := z.SubInt(&t, int64(d)); err != nil {
					return err
				}
				if z.IsZero() {
					z.s = -1
				}
			}
		}
	}

	if neg {
		z.s = -1
	}
	z.fixZeroSign()
	return nil
}

const digits = "0123456789ABCDEF"

// Text returns the value of z as a string in the given radix. The
// radix must be in the range 2..16. Hexadecimal output is byte
// aligned: every byte of the magnitude prints as two digits.
func (z *Int) Text(radix int) (string, error) {
	if radix < 2 || radix > 16 {
		return "", ErrBadInputData
	}

	var buf []byte
	if z.sign() < 0 && !z.IsZero() {
		buf = append(buf, '-')
	}

	if radix == 16 {
		k := 0
		for i := z.sig(); i > 0; i-- {
			for j := limbBytes; j > 0; j-- {
				c := byte(z.limbs[i-1] >> uint((j-1)*8))
				if c == 0 && k == 0 && i+j != 2 {
					continue
				}
				buf = append(buf, digits[c>>4], digits[c&0x0F])
				k = 1
			}
		}
		if z.sig() == 0 {
			buf = append(buf, '0', '0')
		}
		return string(buf), nil
	}

	var t Int
	defer t.Free()
	if err := t.Set(z); err != nil {
		return "", err
	}
	t.s = 1

	var rev []byte
	for {
		r, err := ModInt(&t, int64(radix))
		if err != nil {
			return "", err
		}
		if err := DivInt(&t, nil, &t, int64(radix)); err != nil {
			return "", err
		}
		rev = append(rev, digits[r])
		if t.IsZero() {
			break
		}
	}
	for i := len(rev); i > 0; i-- {
		buf = append(buf, rev[i-1])
	}
	return string(buf), nil
}

// String returns the decimal representation of z.
func (z *Int) String() string {
	s, err := z.Text(10)
	if err != nil {
		panic(err)
	}
	return s
}
