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
		Type:        "explode",
		Description: "fan a list-valued field out to one record per element",
		Create:      newExplodeStage,
	})
}

type explodeOptions struct {
	Field string `mapstructure:"field"`
	// Target is the field name carrying each element in the fanned-out
	// records; defaults to Field.
	Target string `mapstructure:"target"`
}

// newExplodeStage builds a one-to-many stage. Each record must carry a
// list in the configured field; the stage emits one copy of the record
// per list element, with the list replaced by that element. A record
// whose field is missing or not a list fails, so under the default
// isolation policy it is dropped.
func newExplodeStage(name string, options map[string]any) (translate.Stage[fieldmap.Record], error) {
	var o explodeOptions
	if err := mapstructure.Decode(options, &o); err != nil {
		return translate.Stage[fieldmap.Record]{}, fmt.Errorf("decode explode options: %w", err)
	}
	if o.Field == "" {
		return translate.Stage[fieldmap.Record]{}, fmt.Errorf("explode stage requires a field")
	}
	target := o.Target
	if target == "" {
		target = o.Field
	}

	return translate.Stage[fieldmap.Record]{
		Name: name,
		Fn: func(_ context.Context, rec fieldmap.Record) ([]fieldmap.Record, error) {
			v, ok := rec[o.Field]
			if !ok {
				return nil, &fieldmap.MissingFieldError{Field: o.Field}
			}
			items, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("field %q is %T, not a list", o.Field, v)
			}

			out := make([]fieldmap.Record, 0, len(items))
			for _, item := range items {
				fanned := fieldmap.Clone(rec)
				delete(fanned, o.Field)
				fanned[target] = item
				out = append(out, fanned)
			}
			return out, nil
		},
	}, nil
}
