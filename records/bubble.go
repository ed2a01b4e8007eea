package records

import (
	"fmt"

	"github.com/redexp/kaiserhof/i18n"
	. "github.com/redexp/kaiserhof/types"
)

const MemberValue = 5

// Group keys of the member mode
const (
	GroupMale        = "male"
	GroupFemale      = "female"
	GroupUnspecified = "unspecified"
)

type BubbleNode struct {
	Id       string    `json:"id"`
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Group    Group     `json:"group"`
	Value    float64   `json:"value"`
	PersonId *PersonId `json:"personId"`
}

// Group is a numeric weight in count mode or a categorical key in persons mode.
type Group struct {
	Weight float64 `json:"weight,omitempty"`
	Key    string  `json:"key,omitempty"`
}

func MapToBubbles(rows RowSet, mode Mode) []*BubbleNode {
	list := make([]*BubbleNode, 0, len(rows))
	keys := make(map[string]int)

	for _, row := range rows {
		var node *BubbleNode

		if mode == ModeCount {
			node = countToBubble(DecodeCount(row))
		} else {
			node = personToBubble(DecodePerson(row))
		}

		node.Id = uniqKey(keys, node.Id)

		list = append(list, node)
	}

	return list
}

func countToBubble(rec CountRecord) *BubbleNode {
	node := &BubbleNode{
		Name:  i18n.L("household_members", rec.Label, rec.Count),
		Title: rec.Label,
		Group: Group{Weight: float64(rec.Count)},
		Value: float64(rec.Count),
	}

	if rec.PersonId != "" {
		id := rec.PersonId
		node.PersonId = &id
		node.Id = id
	} else {
		node.Id = "group:" + rec.Label
	}

	return node
}

func personToBubble(rec PersonRecord) *BubbleNode {
	id := rec.Id

	return &BubbleNode{
		Id:       id,
		Name:     rec.DisplayName(),
		Title:    rec.DisplayName(),
		Group:    Group{Key: GenderGroup(rec.GenderValue())},
		Value:    MemberValue,
		PersonId: &id,
	}
}

func GenderGroup(g Gender) string {
	switch g {
	case GenderMale:
		return GroupMale
	case GenderFemale:
		return GroupFemale
	}

	return GroupUnspecified
}

func uniqKey(keys map[string]int, key string) string {
	n := keys[key]
	keys[key] = n + 1

	if n == 0 {
		return key
	}

	return fmt.Sprintf("%s#%d", key, n)
}
