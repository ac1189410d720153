package postprocessors

import (
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/postprocessors/collapse"
	"github.com/custodia-labs/orderform-cli/internal/postprocessors/linetrim"
)

// RegisterDefaults adds the built-in clean-up steps.
func RegisterDefaults(r *Registry) {
	r.Register(collapse.Name, "squash runs of blank lines left by PDF and DOCX extraction", buildCollapse)
	r.Register(linetrim.Name, "strip trailing (and optionally leading) whitespace on each line", buildLineTrim)
}

// buildCollapse creates a collapse processor from generic config.
// Supported config keys:
//   - max_blank_lines (int): consecutive blank lines to keep (default: 1)
func buildCollapse(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []collapse.Option
	if n, ok := getIntFromConfig(cfg, "max_blank_lines"); ok {
		opts = append(opts, collapse.WithMaxBlankLines(n))
	}
	return collapse.New(opts...), nil
}

// buildLineTrim creates a line trim processor from generic config.
// Supported config keys:
//   - leading (bool): also trim leading whitespace (default: true)
func buildLineTrim(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []linetrim.Option
	if v, ok := cfg["leading"].(bool); ok {
		opts = append(opts, linetrim.WithLeading(v))
	}
	return linetrim.New(opts...), nil
}

// getIntFromConfig reads a numeric option regardless of how the decoder typed it.
func getIntFromConfig(cfg map[string]any, key string) (int, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
