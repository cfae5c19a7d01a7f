package storage

import (
	"errors"

	"github.com/google/uuid"
)

type (
	IDGenerator interface {
		Generate() []byte
	}

	uuidGenerator struct{}
)

var ErrNotEnoughBytesInGenerator = errors.New("id generator must return 16 bytes")

func (uuidGenerator) Generate() []byte {
	id := uuid.New()
	return id[:]
}

func newID(generator IDGenerator) (uuid.UUID, error) {
	if generator == nil {
		generator = uuidGenerator{}
	}

	id, err := uuid.FromBytes(generator.Generate())

	if err != nil {
		return uuid.Nil, ErrNotEnoughBytesInGenerator
	}

	return id, nil
}
