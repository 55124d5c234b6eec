package core

import "errors"

var (
	ErrNoFace           = errors.New("no face detected")
	ErrNotRecognized    = errors.New("face not recognized")
	ErrUnknownDirective = errors.New("unknown directive")
	ErrInvalidMagnitude = errors.New("invalid magnitude")
	ErrInvalidValue     = errors.New("invalid directive value")
)
