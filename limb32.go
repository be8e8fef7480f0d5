//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

//go:build mpi32

package mpi

import (
	"math/bits"
)

// Limb is one machine word of an integer's magnitude. This build uses
// 32-bit limbs.
type Limb = uint32

const (
	// LimbBits is the width of one limb in bits.
	LimbBits = 32
)

func limbAdd(x, y, carry Limb) (sum, carryOut Limb) {
	return bits.Add32(x, y, carry)
}

func limbSub(x, y, borrow Limb) (diff, borrowOut Limb) {
	return bits.Sub32(x, y, borrow)
}

func limbMul(x, y Limb) (hi, lo Limb) {
	return bits.Mul32(x, y)
}

// limbDiv divides the double-limb value hi:lo by d. It requires
// hi < d, which the callers establish by normalization.
func limbDiv(hi, lo, d Limb) (quo, rem Limb) {
	return bits.Div32(hi, lo, d)
}

func limbLen(x Limb) int {
	return bits.Len32(x)
}

func limbTrailingZeros(x Limb) int {
	return bits.TrailingZeros32(x)
}
