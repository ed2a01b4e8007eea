package records

import (
	"strings"

	. "github.com/redexp/kaiserhof/types"
)

// css classes of family tree nodes
const (
	ClassMan     = "man"
	ClassWoman   = "woman"
	ClassNeutral = "neutral"
)

// PersonNode is a family tree node in the dTree shape.
type PersonNode struct {
	Id           PersonId `json:"id,omitempty"`
	Gender       Gender   `json:"gender,omitempty"`
	Name         string   `json:"name"`
	Class        string   `json:"class"`
	BirthDate    string   `json:"birthDate,omitempty"`
	BirthPlace   string   `json:"birthPlace,omitempty"`
	DeathDate    string   `json:"deathDate,omitempty"`
	DeathPlace   string   `json:"deathPlace,omitempty"`
	FuneralPlace string   `json:"funeralPlace,omitempty"`
	Comment      string   `json:"comment,omitempty"`
	Extra        *Extra   `json:"extra,omitempty"`

	Marriages []*Marriage `json:"marriages,omitempty"`
}

// Extra is passed to the tree renderers.
type Extra struct {
	Id           PersonId `json:"id"`
	ImageUrl     *string  `json:"imageUrl"`
	BirthDate    string   `json:"birthDate,omitempty"`
	BirthPlace   string   `json:"birthPlace,omitempty"`
	DeathDate    string   `json:"deathDate,omitempty"`
	DeathPlace   string   `json:"deathPlace,omitempty"`
	FuneralPlace string   `json:"funeralPlace,omitempty"`
	Comment      string   `json:"comment,omitempty"`
}

type Marriage struct {
	Spouse   *PersonNode   `json:"spouse"`
	Children []*PersonNode `json:"children"`
}

func MapToPersons(rows RowSet) []*PersonNode {
	list := make([]*PersonNode, 0, len(rows))

	for _, row := range rows {
		list = append(list, ToPersonNode(DecodePerson(row)))
	}

	return list
}

func ToPersonNode(rec PersonRecord) *PersonNode {
	var image *string

	if rec.ImageSource != "" {
		src := rec.ImageSource
		image = &src
	}

	return &PersonNode{
		Id:           rec.Id,
		Gender:       rec.GenderValue(),
		Name:         rec.DisplayName(),
		Class:        GenderClass(rec.GenderValue()),
		BirthDate:    rec.BirthDate,
		BirthPlace:   rec.BirthPlace,
		DeathDate:    rec.DeathDate,
		DeathPlace:   rec.DeathPlace,
		FuneralPlace: rec.FuneralPlace,
		Comment:      rec.Comment,
		Extra: &Extra{
			Id:           rec.Id,
			ImageUrl:     image,
			BirthDate:    rec.BirthDate,
			BirthPlace:   rec.BirthPlace,
			DeathDate:    rec.DeathDate,
			DeathPlace:   rec.DeathPlace,
			FuneralPlace: rec.FuneralPlace,
			Comment:      rec.Comment,
		},
	}
}

func GenderClass(g Gender) string {
	switch g {
	case GenderMale:
		return ClassMan
	case GenderFemale:
		return ClassWoman
	}

	return ClassNeutral
}

// Placeholder is an empty stand-in spouse of the opposite class.
func Placeholder(of *PersonNode) *PersonNode {
	class := ClassMan

	if of.Class == ClassMan {
		class = ClassWoman
	}

	return &PersonNode{
		Name:  "",
		Class: class,
	}
}

func (p *PersonNode) Select() {
	if !p.Selected() {
		p.Class += " selected"
	}
}

func (p *PersonNode) Selected() bool {
	return strings.HasSuffix(p.Class, " selected")
}

// Walk visits the node, then every spouse and child of its marriages.
func (p *PersonNode) Walk(cb func(*PersonNode)) {
	cb(p)

	for _, m := range p.Marriages {
		if m.Spouse != nil {
			m.Spouse.Walk(cb)
		}

		for _, child := range m.Children {
			child.Walk(cb)
		}
	}
}
