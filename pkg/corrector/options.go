package corrector

import (
	"dario.cat/mergo"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/protect"
)

// Options tune a single correction request. Zero fields take the
// corrector's defaults.
type Options struct {
	Language      string               `json:"language,omitempty"`
	MaxWords      int                  `json:"max_words,omitempty"`
	OverlapPolicy models.OverlapPolicy `json:"overlap_policy,omitempty"`
	QuoteMode     protect.QuoteMode    `json:"quote_mode,omitempty"`
	QuoteStyles   []string             `json:"quote_styles,omitempty"`
	// Concurrency is the number of chunks checked at once. 1 checks them
	// one after another.
	Concurrency int  `json:"concurrency,omitempty"`
	EnabledOnly bool `json:"enabled_only,omitempty"`
}

// OptionsFromConfig returns the request defaults held in cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Language:      cfg.Correction.Language,
		MaxWords:      cfg.Correction.MaxWords,
		OverlapPolicy: models.OverlapPolicy(cfg.Correction.OverlapPolicy),
		QuoteMode:     protect.QuoteMode(cfg.Correction.QuoteMode),
		QuoteStyles:   cfg.Correction.QuoteStyles,
		Concurrency:   cfg.Correction.Concurrency,
		EnabledOnly:   cfg.Checker.EnabledOnly,
	}
}

// withDefaults fills the zero fields of opts from defaults.
func withDefaults(opts, defaults Options) (Options, error) {
	if err := mergo.Merge(&opts, defaults); err != nil {
		return Options{}, err
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return opts, nil
}
