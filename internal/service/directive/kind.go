package directive

import "strings"

// Kind enumerates every directive the robot understands.
type Kind int

const (
	KindUnknown Kind = iota

	KindMoveLeft
	KindMoveRight
	KindMoveForward
	KindMoveBackward
	KindRotateLeft
	KindRotateRight

	KindRecordAge
	KindRecordWeight
	KindRecordHeight
	KindRecordTemperature
	KindRecordSex
	KindRecordNotes

	KindChangeUser
	KindRegisterUser
)

var kindNames = map[Kind]string{
	KindMoveLeft:          "mover_izquierda",
	KindMoveRight:         "mover_derecha",
	KindMoveForward:       "mover_adelante",
	KindMoveBackward:      "mover_atras",
	KindRotateLeft:        "rotar_izquierda",
	KindRotateRight:       "rotar_derecha",
	KindRecordAge:         "registrar_edad",
	KindRecordWeight:      "registrar_peso",
	KindRecordHeight:      "registrar_altura",
	KindRecordTemperature: "registrar_temperatura_paciente",
	KindRecordSex:         "registrar_sexo",
	KindRecordNotes:       "registrar_comentario_importante",
	KindChangeUser:        "change_user",
	KindRegisterUser:      "register_user",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// ParseKind maps a tag name to its kind, ignoring case.
func ParseKind(name string) Kind {
	if k, ok := kindsByName[strings.ToLower(name)]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Kinds returns all known kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := KindMoveLeft; k <= KindRegisterUser; k++ {
		out = append(out, k)
	}
	return out
}
