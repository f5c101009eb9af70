package pullparser

import (
	"io"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/internal/utils"
)

func readI16(r io.Reader) (int16, error) {
	v, err := utils.ReadU16LE(r)
	if err != nil {
		return 0, ferr.New(err)
	}
	return int16(v), nil
}

func readI32(r io.Reader) (int32, error) {
	v, err := utils.ReadU32LE(r)
	if err != nil {
		return 0, ferr.New(err)
	}
	return int32(v), nil
}

func readI64(r io.Reader) (int64, error) {
	v, err := utils.ReadU64LE(r)
	if err != nil {
		return 0, ferr.New(err)
	}
	return int64(v), nil
}

func readF32(r io.Reader) (float32, error) {
	v, err := utils.ReadF32LE(r)
	if err != nil {
		return 0, ferr.New(err)
	}
	return v, nil
}

func readF64(r io.Reader) (float64, error) {
	v, err := utils.ReadF64LE(r)
	if err != nil {
		return 0, ferr.New(err)
	}
	return v, nil
}
