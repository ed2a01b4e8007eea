package store

import (
	"context"
	"fmt"

	. "github.com/redexp/kaiserhof/types"
	. "github.com/redexp/kaiserhof/utils"
)

func (s *Store) MinRecordYear(ctx context.Context) (int, error) {
	return s.recordYear(ctx, RecordsMinDate)
}

func (s *Store) MaxRecordYear(ctx context.Context) (int, error) {
	return s.recordYear(ctx, RecordsMaxDate)
}

// Bounds is the [min, max] service start year of all records.
func (s *Store) Bounds(ctx context.Context) (r YearRange, err error) {
	r.Start, err = s.MinRecordYear(ctx)

	if err != nil {
		return
	}

	r.End, err = s.MaxRecordYear(ctx)

	return
}

func (s *Store) recordYear(ctx context.Context, q Query) (int, error) {
	rows, err := s.Query(ctx, q)

	if err != nil {
		return 0, err
	}

	if len(rows) == 0 || rows[0]["record"] == nil {
		return 0, fmt.Errorf("%s: %w", q, ErrNoYear)
	}

	return ParseYear(ToString(rows[0]["record"]))
}

func (s *Store) CountMembersByGroupInRange(ctx context.Context, r YearRange) (RowSet, error) {
	return s.Query(ctx, CountPersonsByHouseholdInRange, r.Start, r.End)
}

func (s *Store) MembersOfGroupInRange(ctx context.Context, groupId PersonId, r YearRange) (RowSet, error) {
	return s.Query(ctx, PersonsOfHouseholdInRange, groupId, r.Start, r.End)
}

func (s *Store) Person(ctx context.Context, id PersonId) (RowSet, error) {
	return s.Query(ctx, Person, id)
}

func (s *Store) Parents(ctx context.Context, id PersonId) (RowSet, error) {
	return s.Query(ctx, Parents, id)
}

func (s *Store) Children(ctx context.Context, id PersonId) (RowSet, error) {
	return s.Query(ctx, Children, id)
}

func (s *Store) ChildrenOfSpouse(ctx context.Context, id PersonId, spouseId PersonId) (RowSet, error) {
	return s.Query(ctx, ChildrenOfSpouse, id, spouseId)
}

func (s *Store) Wives(ctx context.Context, id PersonId) (RowSet, error) {
	return s.Query(ctx, Wives, id)
}

func (s *Store) Husbands(ctx context.Context, id PersonId) (RowSet, error) {
	return s.Query(ctx, Husbands, id)
}

func (s *Store) Images(ctx context.Context) (RowSet, error) {
	return s.Query(ctx, Images)
}

func (s *Store) SetImageSource(ctx context.Context, id PersonId, source string) error {
	_, err := s.Exec(ctx, SetImageSource, source, id)

	return err
}
