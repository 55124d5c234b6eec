package patient

import (
	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/directive"
)

// Field is a patient attribute that a directive can overwrite.
type Field int

const (
	FieldAge Field = iota + 1
	FieldWeight
	FieldHeight
	FieldTemperature
	FieldSex
	FieldNotes
)

func (f Field) String() string {
	switch f {
	case FieldAge:
		return "edad"
	case FieldWeight:
		return "peso"
	case FieldHeight:
		return "altura"
	case FieldTemperature:
		return "temperatura"
	case FieldSex:
		return "sexo"
	case FieldNotes:
		return "comentario_importante"
	default:
		return "unknown"
	}
}

// FieldFor resolves the patient table entry for a directive kind.
func FieldFor(kind directive.Kind) (Field, bool) {
	switch kind {
	case directive.KindRecordAge:
		return FieldAge, true
	case directive.KindRecordWeight:
		return FieldWeight, true
	case directive.KindRecordHeight:
		return FieldHeight, true
	case directive.KindRecordTemperature:
		return FieldTemperature, true
	case directive.KindRecordSex:
		return FieldSex, true
	case directive.KindRecordNotes:
		return FieldNotes, true
	default:
		return 0, false
	}
}

// Apply returns a copy of rec with field overwritten by the stringified value.
// Last write wins and no validation is done. For notes the caller is expected
// to send the already merged text (previous notes plus the new one).
func Apply(rec core.PatientRecord, field Field, v directive.Value) core.PatientRecord {
	s := v.String()
	switch field {
	case FieldAge:
		rec.Age = s
	case FieldWeight:
		rec.Weight = s
	case FieldHeight:
		rec.Height = s
	case FieldTemperature:
		rec.Temperature = s
	case FieldSex:
		rec.Sex = s
	case FieldNotes:
		rec.Notes = s
	}
	return rec
}
