package utils

import (
	"encoding/binary"
	"io"
	"math"
)

// ReadU8 reads a single byte.
func ReadU8(r io.Reader) (uint8, error) {
	buf := GetBuffer(1)
	defer ReleaseBuffer(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16LE reads a little-endian uint16.
func ReadU16LE(r io.Reader) (uint16, error) {
	buf := GetBuffer(2)
	defer ReleaseBuffer(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadU32LE reads a little-endian uint32.
func ReadU32LE(r io.Reader) (uint32, error) {
	buf := GetBuffer(4)
	defer ReleaseBuffer(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadU64LE reads a little-endian uint64.
func ReadU64LE(r io.Reader) (uint64, error) {
	buf := GetBuffer(8)
	defer ReleaseBuffer(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// ReadF32LE reads a little-endian IEEE-754 float32, bit-exact.
func ReadF32LE(r io.Reader) (float32, error) {
	raw, err := ReadU32LE(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(raw), nil
}

// ReadF64LE reads a little-endian IEEE-754 float64, bit-exact.
func ReadF64LE(r io.Reader) (float64, error) {
	raw, err := ReadU64LE(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(raw), nil
}

// PutU32LE writes a little-endian uint32 into buf, which must have length >= 4.
func PutU32LE(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

// PutU64LE writes a little-endian uint64 into buf, which must have length >= 8.
func PutU64LE(buf []byte, v uint64) {
	binary.LittleEndian.PutUint64(buf, v)
}
