package domain

import "errors"

var (
	ErrGameNotFound           = errors.New("game not found")
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	ErrUnknownListRow         = errors.New("unknown list row")
)
