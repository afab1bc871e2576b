package stages

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/classicvalues/phased-table-translation/internal/registry"
	"github.com/classicvalues/phased-table-translation/pkg/fieldmap"
	"github.com/classicvalues/phased-table-translation/pkg/translate"
)

func init() {
	registry.RegisterFactory(registry.StageFactory{
		Type:        "filter",
		Description: "keep records where a field exists or equals a value",
		Create:      newFilterStage,
	})
}

type filterOptions struct {
	Field  string `mapstructure:"field"`
	Equals any    `mapstructure:"equals"`
}

// newFilterStage builds a one-to-zero-or-one stage. Records missing
// the configured field are dropped; when "equals" is configured the
// field value must also match it.
func newFilterStage(name string, options map[string]any) (translate.Stage[fieldmap.Record], error) {
	var o filterOptions
	if err := mapstructure.Decode(options, &o); err != nil {
		return translate.Stage[fieldmap.Record]{}, fmt.Errorf("decode filter options: %w", err)
	}
	if o.Field == "" {
		return translate.Stage[fieldmap.Record]{}, fmt.Errorf("filter stage requires a field")
	}
	_, matchValue := options["equals"]

	return translate.Stage[fieldmap.Record]{
		Name: name,
		Fn: func(_ context.Context, rec fieldmap.Record) ([]fieldmap.Record, error) {
			v, ok := rec[o.Field]
			if !ok {
				return nil, nil
			}
			if matchValue && !reflect.DeepEqual(v, o.Equals) {
				return nil, nil
			}
			return []fieldmap.Record{rec}, nil
		},
	}, nil
}
