//
// Copyright (c) 2024-2025 Markku Rossi
//
// All rights reserved.
//

// Package drbg implements a deterministic random byte stream on top
// of the ChaCha20 stream cipher. The stream is seeded with a 32-byte
// key and produces the same byte sequence for the same seed, which
// makes randomized tests and benchmarks reproducible. It is not a
// replacement for crypto/rand in production key generation.
package drbg

import (
	"crypto/sha256"

	"golang.org/x/crypto/chacha20"
)

// DRBG is a deterministic random byte stream. It implements
// io.Reader.
type DRBG struct {
	cipher *chacha20.Cipher
}

// New creates a new DRBG seeded with the argument seed. The seed can
// be of any length; it is compressed to the ChaCha20 key size with
// SHA-256.
func New(seed []byte) (*DRBG, error) {
	key := sha256.Sum256(seed)

	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, err
	}
	return &DRBG{
		cipher: cipher,
	}, nil
}

// Read fills p with the next bytes of the stream. It never fails.
func (d *DRBG) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	d.cipher.XORKeyStream(p, p)
	return len(p), nil
}
