// Package xxtea implements the corrected Block TEA cipher used to encrypt
// MM2's asset and save-file bytes, along with a byte-oriented padding
// wrapper so it can operate on buffers whose length isn't a multiple of
// four.
package xxtea

import (
	"encoding/binary"
	"errors"
)

// ErrTooShort is returned when the word slice passed to Encrypt or Decrypt
// has fewer than two elements; XXTEA's mixing round is undefined below that.
var ErrTooShort = errors.New("xxtea: input must be at least two words")

// ErrBadPaddedLength is returned by DecryptPadded when the ciphertext length
// is not a multiple of four bytes.
var ErrBadPaddedLength = errors.New("xxtea: padded ciphertext length must be a multiple of 4")

const delta = 0x9e3779b9

// Encrypt XXTEA-encrypts v in place using the 16-byte key k, reinterpreted
// as four little-endian 32-bit words.
func Encrypt(v []uint32, k *[4]uint32) error {
	if len(v) < 2 {
		return ErrTooShort
	}

	n := len(v)
	rounds := 6 + 52/n

	var sum uint32
	z := v[n-1]
	for round := 0; round < rounds; round++ {
		sum += delta
		e := (sum >> 2) & 3

		var p int
		for p = 0; p < n-1; p++ {
			y := v[p+1]
			v[p] += mx(y, z, sum, k, p, e)
			z = v[p]
		}
		y := v[0]
		v[n-1] += mx(y, z, sum, k, n-1, e)
		z = v[n-1]
	}

	return nil
}

// Decrypt reverses Encrypt in place.
func Decrypt(v []uint32, k *[4]uint32) error {
	if len(v) < 2 {
		return ErrTooShort
	}

	n := len(v)
	rounds := 6 + 52/n

	sum := uint32(rounds) * delta
	y := v[0]
	for round := 0; round < rounds; round++ {
		e := (sum >> 2) & 3

		var p int
		for p = n - 1; p > 0; p-- {
			z := v[p-1]
			v[p] -= mx(y, z, sum, k, p, e)
			y = v[p]
		}
		z := v[n-1]
		v[0] -= mx(y, z, sum, k, 0, e)
		y = v[0]

		sum -= delta
	}

	return nil
}

func mx(y, z, sum uint32, k *[4]uint32, p int, e uint32) uint32 {
	return ((z>>5 ^ y<<2) + (y>>3 ^ z<<4)) ^ ((sum ^ y) + (k[(uint32(p)&3)^e] ^ z))
}

// KeyFromBytes reinterprets a 16-byte key as four little-endian 32-bit
// words, the layout the cipher's mixing function expects.
func KeyFromBytes(key []byte) (*[4]uint32, error) {
	if len(key) != 16 {
		return nil, errors.New("xxtea: key must be exactly 16 bytes")
	}
	var k [4]uint32
	for i := range k {
		k[i] = binary.LittleEndian.Uint32(key[i*4 : i*4+4])
	}
	return &k, nil
}

// wordsFromBytes reinterprets b (whose length must be a multiple of four)
// as a slice of little-endian 32-bit words.
func wordsFromBytes(b []byte) []uint32 {
	v := make([]uint32, len(b)/4)
	for i := range v {
		v[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return v
}

// bytesFromWords is the inverse of wordsFromBytes.
func bytesFromWords(v []uint32) []byte {
	b := make([]byte, len(v)*4)
	for i, w := range v {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], w)
	}
	return b
}
