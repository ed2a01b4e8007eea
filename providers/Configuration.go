package providers

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/redexp/kaiserhof/i18n"
	"github.com/redexp/kaiserhof/layout"
	. "github.com/redexp/kaiserhof/types"
	. "github.com/redexp/kaiserhof/utils"
)

func (c *Controller) ConfigurationChange(ctx *Ctx, config *ClientConfiguration) error {
	c.bind(ctx)

	return c.Configure(*config)
}

type ClientConfiguration struct {
	Locale          string         `json:"locale" mapstructure:"locale"`
	Width           float64        `json:"width" mapstructure:"width"`
	Height          float64        `json:"height" mapstructure:"height"`
	RangeDebounceMs int            `json:"range_debounce_ms" mapstructure:"range_debounce_ms"`
	DiscardStale    *bool          `json:"discard_stale" mapstructure:"discard_stale"`
	Colors          layout.Palette `json:"colors" mapstructure:"colors"`
}

func DefaultConfiguration() ClientConfiguration {
	return ClientConfiguration{
		Locale:          i18n.Locale,
		Width:           layout.DefaultViewport.Width,
		Height:          layout.DefaultViewport.Height,
		RangeDebounceMs: 300,
		DiscardStale:    P(true),
		Colors:          layout.DefaultPalette,
	}
}

func GetClientConfiguration(src any) (res ClientConfiguration, err error) {
	err = mapstructure.WeakDecode(src, &res)

	return
}

// Merge fills every unset field of config from base.
func (config ClientConfiguration) Merge(base ClientConfiguration) ClientConfiguration {
	res := ClientConfiguration{
		Locale:          StrOr(config.Locale, base.Locale),
		Width:           Or(config.Width, base.Width),
		Height:          Or(config.Height, base.Height),
		RangeDebounceMs: Or(config.RangeDebounceMs, base.RangeDebounceMs),
		DiscardStale:    config.DiscardStale,
		Colors: layout.Palette{
			Primary:   StrOr(config.Colors.Primary, base.Colors.Primary),
			Secondary: StrOr(config.Colors.Secondary, base.Colors.Secondary),
			Man:       StrOr(config.Colors.Man, base.Colors.Man),
			Woman:     StrOr(config.Colors.Woman, base.Colors.Woman),
		},
	}

	if res.DiscardStale == nil {
		res.DiscardStale = base.DiscardStale
	}

	return res
}

func (config ClientConfiguration) Viewport() layout.Viewport {
	return layout.Viewport{
		Width:  config.Width,
		Height: config.Height,
	}
}

type ConfigurationHandlers struct {
	Change ConfigChangeFunc
}

func (req *ConfigurationHandlers) Handle(ctx *Ctx) (res any, validMethod bool, validParams bool, err error) {
	switch ctx.Method {
	case ConfigChangeMethod:
		validMethod = true

		var params ClientConfiguration
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			err = req.Change(ctx, &params)
		}
	}

	return
}

const ConfigChangeMethod = "config/change"

type ConfigChangeFunc func(*Ctx, *ClientConfiguration) error
