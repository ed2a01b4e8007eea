package records

import (
	"github.com/mitchellh/mapstructure"
	. "github.com/redexp/kaiserhof/types"
	. "github.com/redexp/kaiserhof/utils"
)

// PersonRecord is one row of the person table joined with its image.
type PersonRecord struct {
	Id           PersonId `mapstructure:"F41"`
	Gender       string   `mapstructure:"F24"`
	Label        string   `mapstructure:"ZLabel"`
	BirthDate    string   `mapstructure:"F13"`
	DeathDate    string   `mapstructure:"F14"`
	BirthPlace   string   `mapstructure:"F15"`
	FuneralPlace string   `mapstructure:"F16"`
	DeathPlace   string   `mapstructure:"F17"`
	Comment      string   `mapstructure:"Kommentar"`
	ImageSource  string   `mapstructure:"Source"`
}

// CountRecord is one household of the count query.
type CountRecord struct {
	Label    string   `mapstructure:"Bezeichnung"`
	Count    int      `mapstructure:"Anzahl"`
	PersonId PersonId `mapstructure:"F41"`
}

func decode(row Row, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})

	if err != nil {
		return err
	}

	return dec.Decode(row)
}

func DecodePerson(row Row) PersonRecord {
	var rec PersonRecord

	if err := decode(row, &rec); err != nil {
		// malformed row, take every field on its own
		rec = PersonRecord{
			Id:           ToString(row["F41"]),
			Gender:       ToString(row["F24"]),
			Label:        ToString(row["ZLabel"]),
			BirthDate:    ToString(row["F13"]),
			DeathDate:    ToString(row["F14"]),
			BirthPlace:   ToString(row["F15"]),
			FuneralPlace: ToString(row["F16"]),
			DeathPlace:   ToString(row["F17"]),
			Comment:      ToString(row["Kommentar"]),
			ImageSource:  ToString(row["Source"]),
		}
	}

	return rec
}

func DecodeCount(row Row) CountRecord {
	var rec CountRecord

	if err := decode(row, &rec); err != nil {
		rec = CountRecord{
			Label:    ToString(row["Bezeichnung"]),
			PersonId: ToString(row["F41"]),
		}
	}

	return rec
}

// DisplayName falls back to the id when the label is absent.
func (rec PersonRecord) DisplayName() string {
	return StrOr(rec.Label, rec.Id)
}

func (rec PersonRecord) GenderValue() Gender {
	return ParseGender(rec.Gender)
}
