package providers

import (
	"context"
	"encoding/json"

	"github.com/redexp/kaiserhof/records"
	. "github.com/redexp/kaiserhof/types"
)

func (c *Controller) TreePerson(ctx *Ctx, params *TreePersonParams) (*records.PersonNode, error) {
	c.bind(ctx)

	return c.TreeClick(context.Background(), params.PersonId)
}

func (c *Controller) TreeImage(ctx *Ctx, params *TreeImageParams) error {
	c.bind(ctx)

	tree, err := c.SetImage(context.Background(), params.PersonId, params.Source)

	if err != nil {
		return err
	}

	if tree != nil {
		c.push(TreeRenderNotification, tree)
	}

	return nil
}

type TreeHandlers struct {
	Person TreePersonFunc
	Image  TreeImageFunc
}

func (req *TreeHandlers) Handle(ctx *Ctx) (res any, validMethod bool, validParams bool, err error) {
	switch ctx.Method {
	case TreePersonMethod:
		validMethod = true

		var params TreePersonParams
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			res, err = req.Person(ctx, &params)
		}

	case TreeImageMethod:
		validMethod = true

		var params TreeImageParams
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			err = req.Image(ctx, &params)
		}
	}

	return
}

// TreePerson

const TreePersonMethod = "tree/person"

type TreePersonFunc func(ctx *Ctx, params *TreePersonParams) (*records.PersonNode, error)

type TreePersonParams struct {
	PersonId PersonId `json:"personId"`
}

// TreeImage

const TreeImageMethod = "tree/image"

type TreeImageFunc func(ctx *Ctx, params *TreeImageParams) error

type TreeImageParams struct {
	PersonId PersonId `json:"personId"`
	Source   string   `json:"source"`
}
