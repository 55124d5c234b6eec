package config

import (
	"context"
	"fmt"
	"time"
)

type MotorConfig struct {
	// gpio drives real pins, dryrun only logs.
	Driver string `env:"FERPY_MOTOR_DRIVER" envDefault:"dryrun"`

	LeftFront  []int `env:"FERPY_PINS_LEFT_FRONT" envSeparator:"," envDefault:"16,17"`
	LeftRear   []int `env:"FERPY_PINS_LEFT_REAR" envSeparator:"," envDefault:"27,22"`
	RightFront []int `env:"FERPY_PINS_RIGHT_FRONT" envSeparator:"," envDefault:"23,24"`
	RightRear  []int `env:"FERPY_PINS_RIGHT_REAR" envSeparator:"," envDefault:"25,26"`

	TranslationScale time.Duration `env:"FERPY_TRANSLATION_SCALE" envDefault:"100ms"`
	RotationScale    time.Duration `env:"FERPY_ROTATION_SCALE" envDefault:"10ms"`
	MaxPulse         time.Duration `env:"FERPY_MAX_PULSE" envDefault:"30s"`
}

func NewMotorConfig(ctx context.Context) *MotorConfig {
	return mustLoad[MotorConfig](ctx, "Motor")
}

// Pairs returns the (positive, negative) lines of the four motors in
// left-front, left-rear, right-front, right-rear order.
func (c MotorConfig) Pairs() ([4][2]int, error) {
	var out [4][2]int
	for i, pins := range [][]int{c.LeftFront, c.LeftRear, c.RightFront, c.RightRear} {
		if len(pins) != 2 {
			return out, fmt.Errorf("motor %d: expected 2 pins, got %d", i, len(pins))
		}
		if pins[0] == pins[1] {
			return out, fmt.Errorf("motor %d: both lines on pin %d", i, pins[0])
		}
		out[i] = [2]int{pins[0], pins[1]}
	}
	return out, nil
}

type FaceConfig struct {
	// Encoder sidecar, face recognition is disabled when empty.
	EncoderURL string        `env:"FERPY_FACE_ENCODER_URL"`
	Tolerance  float64       `env:"FERPY_FACE_TOLERANCE" envDefault:"0.6"`
	Timeout    time.Duration `env:"FERPY_FACE_TIMEOUT" envDefault:"30s"`
}

func NewFaceConfig(ctx context.Context) *FaceConfig {
	return mustLoad[FaceConfig](ctx, "Face")
}

type CameraConfig struct {
	// Command prints one JPEG frame on stdout.
	Command string `env:"FERPY_CAMERA_COMMAND" envDefault:"rpicam-still -n -t 1000 --width 640 --height 360 -e jpg -o -"`
	// File is read instead of running Command when set.
	File string `env:"FERPY_CAMERA_FILE"`
}

func NewCameraConfig(ctx context.Context) *CameraConfig {
	return mustLoad[CameraConfig](ctx, "Camera")
}

type SpeechConfig struct {
	// Command reads the text on stdin. {lang} is replaced by the language.
	Command string `env:"FERPY_SPEECH_COMMAND"`
	Console bool   `env:"FERPY_SPEECH_CONSOLE" envDefault:"true"`
}

func NewSpeechConfig(ctx context.Context) *SpeechConfig {
	return mustLoad[SpeechConfig](ctx, "Speech")
}
