package server

import (
	"errors"
	"fmt"
)

var errEmptyRange = errors.New("end must be after start")

func errInvalidBound(name string, err error) error {
	return fmt.Errorf("invalid %s bound: %w", name, err)
}
