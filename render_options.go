package htmltext

import (
	"github.com/rs/zerolog"

	"pkt.systems/htmltext/internal/logging"
)

// DefaultWidth is the wrap width used when no WithWidth option is given.
const DefaultWidth = 72

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	width     int
	refEvents bool
	logger    *zerolog.Logger
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{width: DefaultWidth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.width <= 0 {
		cfg.width = DefaultWidth
	}
	return cfg
}

func (cfg renderConfig) log() zerolog.Logger {
	if cfg.logger != nil {
		return *cfg.logger
	}
	return logging.GetLogger("htmltext")
}

// WithWidth sets the wrap width in display columns. Values <= 0 select DefaultWidth.
func WithWidth(width int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.width = width
	}
}

// WithReferenceEvents makes the tokenizer adapter deliver character and
// entity references as separate CharRef/EntityRef events instead of
// resolving them inside text.
func WithReferenceEvents(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.refEvents = enabled
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = &logger
	}
}
