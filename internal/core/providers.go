package core

import (
	"context"
)

type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// Conversation is the language model client. History is returned updated and
// must be passed back unchanged on the next call.
type Conversation interface {
	Interact(ctx context.Context, history History, prompt string, image *Image, record PatientRecord) (string, History, error)
}

type FaceRecognizer interface {
	// Detect reports whether the image contains at least one face.
	Detect(ctx context.Context, image *Image) (bool, error)
	// Identify returns the registered name matching the first face, or
	// ErrNotRecognized / ErrNoFace.
	Identify(ctx context.Context, image *Image) (string, error)
	Register(ctx context.Context, name string, image *Image) error
}

type Camera interface {
	Capture(ctx context.Context) (*Image, error)
}

type Listener interface {
	// ListenCommand blocks until the next command addressed to the robot.
	ListenCommand(ctx context.Context) (string, error)
	// ListenName blocks until the user says a name. An empty string means
	// nothing usable was heard.
	ListenName(ctx context.Context) (string, error)
}

type StatusReporter interface {
	SetState(ctx context.Context, state DisplayState)
}
