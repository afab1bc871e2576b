package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/classicvalues/phased-table-translation/internal/config"
	"github.com/classicvalues/phased-table-translation/pkg/fieldmap"
	"github.com/classicvalues/phased-table-translation/pkg/translate"
)

// NewTranslatorFromConfig builds a record translator from
// configuration. Stages are created through their registered factories
// and ordered by their Order field; counter is required only when
// metering is enabled. logger may be nil.
func NewTranslatorFromConfig(cfg config.TranslatorConfig, counter translate.Counter, logger *slog.Logger) (*translate.Translator[fieldmap.Record], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stageCfgs := make([]config.StageConfig, len(cfg.Stages))
	copy(stageCfgs, cfg.Stages)
	sort.SliceStable(stageCfgs, func(i, j int) bool {
		return stageCfgs[i].Order < stageCfgs[j].Order
	})

	stages := make([]translate.Stage[fieldmap.Record], 0, len(stageCfgs))
	for _, sc := range stageCfgs {
		stage, err := CreateFromFactory(sc.Type, sc.Name, sc.Options)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", sc.Name, err)
		}
		stages = append(stages, stage)
	}

	var opts []translate.Option[fieldmap.Record]
	if !cfg.IsolationEnabled() {
		opts = append(opts, translate.WithoutIsolation[fieldmap.Record]())
	}
	if cfg.Metering.Enabled {
		if counter == nil {
			return nil, fmt.Errorf("metering enabled but no counter provided")
		}
		opts = append(opts, translate.WithMetering[fieldmap.Record](counter))
		if cfg.Metering.Prefix != "" {
			opts = append(opts, translate.WithCounterName[fieldmap.Record](
				translate.PrefixedCounterName(cfg.Metering.Prefix)))
		}
	}
	if logger != nil {
		opts = append(opts, translate.WithLogger[fieldmap.Record](logger))
	}

	return translate.New(stages, opts...), nil
}
