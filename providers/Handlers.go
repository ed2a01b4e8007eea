package providers

import (
	. "github.com/redexp/kaiserhof/types"
	"github.com/tliron/glsp"
)

func CreateRequestHandler(c *Controller) *RequestHandler {
	return &RequestHandler{
		Handlers: []glsp.Handler{
			NewBubbleHandlers(c),
			NewTreeHandlers(c),
			NewConfigurationHandlers(c),
		},
	}
}

func NewBubbleHandlers(c *Controller) *BubbleHandlers {
	return &BubbleHandlers{
		Init:  c.BubblesInit,
		Range: c.BubblesRange,
		Click: c.BubblesClick,
		Hover: c.BubblesHover,
		Reset: c.BubblesReset,
	}
}

func NewTreeHandlers(c *Controller) *TreeHandlers {
	return &TreeHandlers{
		Person: c.TreePerson,
		Image:  c.TreeImage,
	}
}

func NewConfigurationHandlers(c *Controller) *ConfigurationHandlers {
	return &ConfigurationHandlers{
		Change: c.ConfigurationChange,
	}
}

type RequestHandler struct {
	Handlers []glsp.Handler
}

func (req *RequestHandler) Handle(ctx *Ctx) (res any, validMethod bool, validParams bool, err error) {
	for _, h := range req.Handlers {
		res, validMethod, validParams, err = h.Handle(ctx)

		if validMethod {
			return
		}
	}

	return
}
