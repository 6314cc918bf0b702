package core

import (
	"crypto/rand"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

type Salt [32]byte

func NewSalt(reader io.Reader) (Salt, error) {
	var salt Salt
	if _, err := io.ReadFull(reader, salt[:]); err != nil {
		return Salt{}, errors.Wrap(err, "unable to generate salt")
	}
	return salt, nil
}

func newRandomSalt() (Salt, error) {
	return NewSalt(rand.Reader)
}

// Hex returns the 0x-prefixed, zero padded hex form.
func (s Salt) Hex() string {
	return hexutil.Encode(s[:])
}
