package types

import (
	"github.com/tliron/glsp"
)

type Ctx = glsp.Context

type PersonId = string

// Row is one result row of the data access adapter, column name to value.
type Row = map[string]any
type RowSet = []Row

type Mode string

const (
	ModeCount   Mode = "count"
	ModePersons Mode = "persons"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func ParseGender(value string) Gender {
	switch value {
	case "m", "M", "male":
		return GenderMale
	case "w", "W", "f", "F", "female":
		return GenderFemale
	}

	return GenderUnknown
}

type YearRange struct {
	Start int `json:"start" mapstructure:"start"`
	End   int `json:"end" mapstructure:"end"`
}

// Clamp returns the range limited to bounds, with Start <= End.
func (r YearRange) Clamp(bounds YearRange) YearRange {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}

	r.Start = max(bounds.Start, min(r.Start, bounds.End))
	r.End = max(bounds.Start, min(r.End, bounds.End))

	return r
}
