package utils

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
)

// HashType wraps the hash array inside a struct,
// someday can change to another hash algorithm simply
type HashType struct {
	md5 [md5.Size]byte
}

func MakeHash(data []byte) HashType {
	return HashType{md5.Sum(data)}
}

func (h HashType) Equal(hash HashType) bool {
	return h.md5 == hash.md5
}

func (h HashType) Bytes() []byte {
	return h.md5[:]
}

func (h HashType) String() string {
	return hex.EncodeToString(h.Bytes())
}

func (h HashType) MarshalMsgpack() ([]byte, error) {
	return h.md5[:], nil
}

func (h *HashType) UnmarshalMsgpack(data []byte) error {
	if len(data) != md5.Size {
		return errors.New("invalid hash length")
	}
	copy(h.md5[:], data)
	return nil
}

func (h HashType) IsValid() bool {
	var zero HashType
	return h != zero
}
