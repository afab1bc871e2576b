package stages

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/classicvalues/phased-table-translation/internal/registry"
	"github.com/classicvalues/phased-table-translation/pkg/fieldmap"
	"github.com/classicvalues/phased-table-translation/pkg/translate"
)

func init() {
	registry.RegisterFactory(registry.StageFactory{
		Type:        "project",
		Description: "copy configured fields into a fresh record",
		Create:      newProjectStage,
	})
}

type projectOptions struct {
	Fields []projectField `mapstructure:"fields"`
}

type projectField struct {
	Source string `mapstructure:"source"`
	// Target defaults to Source when empty.
	Target    string `mapstructure:"target"`
	Mandatory bool   `mapstructure:"mandatory"`
}

// newProjectStage builds a one-to-one stage that maps each record into
// a fresh record containing only the configured fields. A record
// missing a mandatory field fails, which under the default isolation
// policy drops that record.
func newProjectStage(name string, options map[string]any) (translate.Stage[fieldmap.Record], error) {
	var o projectOptions
	if err := mapstructure.Decode(options, &o); err != nil {
		return translate.Stage[fieldmap.Record]{}, fmt.Errorf("decode project options: %w", err)
	}
	if len(o.Fields) == 0 {
		return translate.Stage[fieldmap.Record]{}, fmt.Errorf("project stage requires at least one field")
	}

	spec := make(fieldmap.Spec, len(o.Fields))
	for _, f := range o.Fields {
		if f.Source == "" {
			return translate.Stage[fieldmap.Record]{}, fmt.Errorf("project field without source name")
		}
		spec[fieldmap.Descriptor{Source: f.Source, Target: f.Target}] = f.Mandatory
	}

	mapper := fieldmap.New()
	return translate.Stage[fieldmap.Record]{
		Name: name,
		Fn: func(_ context.Context, rec fieldmap.Record) ([]fieldmap.Record, error) {
			dst := make(fieldmap.Record, len(spec))
			if err := mapper.MapAll(rec, dst, spec, nil); err != nil {
				return nil, err
			}
			return []fieldmap.Record{dst}, nil
		},
	}, nil
}
