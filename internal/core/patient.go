package core

import "sort"

// Sentinels for patient fields that have not been reported yet.
const (
	UnknownMasculine = "desconocido"
	UnknownFeminine  = "desconocida"
)

// PatientRecord is stored with the keys the robot has always used on disk.
type PatientRecord struct {
	Name        string `json:"nombre"`
	Age         string `json:"edad"`
	Weight      string `json:"peso"`
	Height      string `json:"altura"`
	Temperature string `json:"temperatura"`
	Sex         string `json:"sexo"`
	Notes       string `json:"comentario_importante"`
}

// NewPatientRecord returns a record where every field except the name holds
// its unknown sentinel.
func NewPatientRecord(name string) PatientRecord {
	return PatientRecord{
		Name:        name,
		Age:         UnknownFeminine,
		Weight:      UnknownMasculine,
		Height:      UnknownFeminine,
		Temperature: UnknownFeminine,
		Sex:         UnknownMasculine,
		Notes:       UnknownMasculine,
	}
}

// Normalize fills empty fields with sentinels so that records loaded from
// older files never expose a missing value.
func (r PatientRecord) Normalize(name string) PatientRecord {
	def := NewPatientRecord(name)
	if r.Name == "" {
		r.Name = def.Name
	}
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&r.Age, def.Age)
	fill(&r.Weight, def.Weight)
	fill(&r.Height, def.Height)
	fill(&r.Temperature, def.Temperature)
	fill(&r.Sex, def.Sex)
	fill(&r.Notes, def.Notes)
	return r
}

// PatientDatabase maps an identity name to its record.
type PatientDatabase map[string]PatientRecord

func (db PatientDatabase) Clone() PatientDatabase {
	out := make(PatientDatabase, len(db))
	for k, v := range db {
		out[k] = v
	}
	return out
}

func (db PatientDatabase) Names() []string {
	names := make([]string, 0, len(db))
	for k := range db {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
