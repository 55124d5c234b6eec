package actuator

import "github.com/sandevgo/ferpy/internal/service/directive"

// Motion is a movement primitive of the mecanum base.
type Motion int

const (
	Forward Motion = iota + 1
	Backward
	Left
	Right
	RotateLeft
	RotateRight
)

func (m Motion) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case RotateLeft:
		return "rotate_left"
	case RotateRight:
		return "rotate_right"
	default:
		return "none"
	}
}

// Rotational motions are scaled as angles, the rest as distances.
func (m Motion) Rotational() bool {
	return m == RotateLeft || m == RotateRight
}

// MotionFor resolves the actuator table entry for a directive kind.
func MotionFor(kind directive.Kind) (Motion, bool) {
	switch kind {
	case directive.KindMoveForward:
		return Forward, true
	case directive.KindMoveBackward:
		return Backward, true
	case directive.KindMoveLeft:
		return Left, true
	case directive.KindMoveRight:
		return Right, true
	case directive.KindRotateLeft:
		return RotateLeft, true
	case directive.KindRotateRight:
		return RotateRight, true
	default:
		return 0, false
	}
}

// Drive is the state of the two control lines of one motor.
type Drive struct {
	Pos bool
	Neg bool
}

var (
	fwd = Drive{Pos: true}
	rev = Drive{Neg: true}
)

func (d Drive) Invert() Drive {
	return Drive{Pos: d.Neg, Neg: d.Pos}
}

// Pattern holds one Drive per motor, in the order LF, LR, RF, RR.
type Pattern [4]Drive

func (p Pattern) Invert() Pattern {
	var out Pattern
	for i, d := range p {
		out[i] = d.Invert()
	}
	return out
}

var patterns = func() map[Motion]Pattern {
	forward := Pattern{fwd, fwd, fwd, fwd}
	left := Pattern{rev, fwd, fwd, rev}
	rotateLeft := Pattern{rev, rev, fwd, fwd}
	return map[Motion]Pattern{
		Forward:     forward,
		Backward:    forward.Invert(),
		Left:        left,
		Right:       left.Invert(),
		RotateLeft:  rotateLeft,
		RotateRight: rotateLeft.Invert(),
	}
}()

func PatternFor(m Motion) (Pattern, bool) {
	p, ok := patterns[m]
	return p, ok
}
