package providers

import (
	"context"
	"encoding/json"

	"github.com/redexp/kaiserhof/scene"
	. "github.com/redexp/kaiserhof/types"
)

func (c *Controller) BubblesInit(ctx *Ctx, params *BubblesInitParams) (*InitResult, error) {
	c.bind(ctx)

	if params.Config != nil {
		config, err := GetClientConfiguration(params.Config)

		if err != nil {
			return nil, err
		}

		if err = c.Configure(config); err != nil {
			return nil, err
		}
	}

	return c.Init(context.Background())
}

func (c *Controller) BubblesRange(ctx *Ctx, params *BubblesRangeParams) error {
	c.bind(ctx)

	r := YearRange{Start: params.Start, End: params.End}

	if !params.Final {
		c.RangeChange(r)
		return nil
	}

	res, err := c.RangeRelease(context.Background(), r)

	if err != nil {
		return err
	}

	if res != nil {
		c.push(BubblesRenderNotification, res)
	}

	return nil
}

func (c *Controller) BubblesClick(ctx *Ctx, params *BubblesKeyParams) (*ClickResult, error) {
	c.bind(ctx)

	return c.BubbleClick(context.Background(), params.Key)
}

func (c *Controller) BubblesHover(ctx *Ctx, params *BubblesHoverParams) ([]scene.Instruction, error) {
	if params.Over {
		return c.Hover(params.Key), nil
	}

	return c.Leave(params.Key), nil
}

func (c *Controller) BubblesReset(ctx *Ctx) (*ClickResult, error) {
	c.bind(ctx)

	res, err := c.Reset(context.Background())

	if err == nil {
		c.push(TreeRenderNotification, nil)
	}

	return res, err
}

type BubbleHandlers struct {
	Init  BubblesInitFunc
	Range BubblesRangeFunc
	Click BubblesClickFunc
	Hover BubblesHoverFunc
	Reset BubblesResetFunc
}

func (req *BubbleHandlers) Handle(ctx *Ctx) (res any, validMethod bool, validParams bool, err error) {
	switch ctx.Method {
	case BubblesInitMethod:
		validMethod = true

		var params BubblesInitParams
		if len(ctx.Params) > 0 {
			if err = json.Unmarshal(ctx.Params, &params); err != nil {
				return
			}
		}

		validParams = true
		res, err = req.Init(ctx, &params)

	case BubblesRangeMethod:
		validMethod = true

		var params BubblesRangeParams
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			err = req.Range(ctx, &params)
		}

	case BubblesClickMethod:
		validMethod = true

		var params BubblesKeyParams
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			res, err = req.Click(ctx, &params)
		}

	case BubblesHoverMethod:
		validMethod = true

		var params BubblesHoverParams
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			res, err = req.Hover(ctx, &params)
		}

	case BubblesResetMethod:
		validMethod = true
		validParams = true
		res, err = req.Reset(ctx)
	}

	return
}

// BubblesInit

const BubblesInitMethod = "bubbles/init"

type BubblesInitFunc func(ctx *Ctx, params *BubblesInitParams) (*InitResult, error)

type BubblesInitParams struct {
	Config map[string]any `json:"config,omitempty"`
}

// BubblesRange

const BubblesRangeMethod = "bubbles/range"

type BubblesRangeFunc func(ctx *Ctx, params *BubblesRangeParams) error

type BubblesRangeParams struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Final bool `json:"final"`
}

// BubblesClick

const BubblesClickMethod = "bubbles/click"

type BubblesClickFunc func(ctx *Ctx, params *BubblesKeyParams) (*ClickResult, error)

type BubblesKeyParams struct {
	Key string `json:"key"`
}

// BubblesHover

const BubblesHoverMethod = "bubbles/hover"

type BubblesHoverFunc func(ctx *Ctx, params *BubblesHoverParams) ([]scene.Instruction, error)

type BubblesHoverParams struct {
	Key  string `json:"key"`
	Over bool   `json:"over"`
}

// BubblesReset

const BubblesResetMethod = "bubbles/reset"

type BubblesResetFunc func(ctx *Ctx) (*ClickResult, error)

// Notifications

const (
	BubblesRenderNotification = "bubbles/render"
	TreeRenderNotification    = "tree/render"
)
