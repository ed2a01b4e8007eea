package genealogy

import (
	"context"
	"errors"
	"fmt"

	"github.com/redexp/kaiserhof/records"
	. "github.com/redexp/kaiserhof/types"
)

var ErrNotFound = errors.New("person not found")

// Source is the part of the data access adapter the resolver queries.
type Source interface {
	Person(ctx context.Context, id PersonId) (RowSet, error)
	Parents(ctx context.Context, id PersonId) (RowSet, error)
	Wives(ctx context.Context, id PersonId) (RowSet, error)
	Husbands(ctx context.Context, id PersonId) (RowSet, error)
	ChildrenOfSpouse(ctx context.Context, id PersonId, spouseId PersonId) (RowSet, error)
}

type Resolver struct {
	Source Source
}

func NewResolver(source Source) *Resolver {
	return &Resolver{Source: source}
}

// ResolveFamilyTree builds the tree around the focal person: at most one
// parent generation above and the children of each marriage below. Nothing
// deeper is expanded, so the result can not contain a cycle.
func (r *Resolver) ResolveFamilyTree(ctx context.Context, id PersonId) (*records.PersonNode, error) {
	rows, err := r.Source.Person(ctx, id)

	if err != nil {
		return nil, fmt.Errorf("person %s: %w", id, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	person := records.ToPersonNode(records.DecodePerson(rows[0]))

	parentRows, err := r.Source.Parents(ctx, id)

	if err != nil {
		return nil, fmt.Errorf("parents of %s: %w", id, err)
	}

	spouses, err := r.spouses(ctx, id)

	if err != nil {
		return nil, err
	}

	person.Marriages = make([]*records.Marriage, 0, len(spouses))

	for _, spouse := range spouses {
		children, err := r.Source.ChildrenOfSpouse(ctx, id, spouse.Id)

		if err != nil {
			return nil, fmt.Errorf("children of %s and %s: %w", id, spouse.Id, err)
		}

		person.Marriages = append(person.Marriages, &records.Marriage{
			Spouse:   spouse,
			Children: records.MapToPersons(children),
		})
	}

	person.Select()

	if len(parentRows) == 0 {
		return person, nil
	}

	parents := records.MapToPersons(parentRows)
	parent := parents[0]

	var coParent *records.PersonNode

	if len(parents) > 1 {
		coParent = parents[1]
	} else {
		coParent = records.Placeholder(parent)
	}

	parent.Marriages = []*records.Marriage{
		{
			Spouse:   coParent,
			Children: []*records.PersonNode{person},
		},
	}

	return parent, nil
}

// spouses of both edge senses, first occurrence of an id wins
func (r *Resolver) spouses(ctx context.Context, id PersonId) ([]*records.PersonNode, error) {
	wives, err := r.Source.Wives(ctx, id)

	if err != nil {
		return nil, fmt.Errorf("wives of %s: %w", id, err)
	}

	husbands, err := r.Source.Husbands(ctx, id)

	if err != nil {
		return nil, fmt.Errorf("husbands of %s: %w", id, err)
	}

	all := records.MapToPersons(append(append(RowSet{}, wives...), husbands...))
	list := make([]*records.PersonNode, 0, len(all))
	seen := make(map[PersonId]bool)

	for _, p := range all {
		if p.Id != "" && seen[p.Id] {
			continue
		}

		seen[p.Id] = true
		list = append(list, p)
	}

	return list, nil
}
