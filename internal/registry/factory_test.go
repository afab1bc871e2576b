package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classicvalues/phased-table-translation/internal/config"
	"github.com/classicvalues/phased-table-translation/pkg/fieldmap"
	"github.com/classicvalues/phased-table-translation/pkg/translate"
)

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *fakeCounter) IncrementCounter(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[name]++
}

// tagFactory registers a stage type that appends its stage name to
// each record's "trail" field, recording execution order.
func tagFactory(stageType string) StageFactory {
	return StageFactory{
		Type: stageType,
		Create: func(name string, _ map[string]any) (translate.Stage[fieldmap.Record], error) {
			return translate.Stage[fieldmap.Record]{
				Name: name,
				Fn: func(_ context.Context, rec fieldmap.Record) ([]fieldmap.Record, error) {
					out := fieldmap.Clone(rec)
					trail, _ := out["trail"].(string)
					out["trail"] = trail + name + ";"
					return []fieldmap.Record{out}, nil
				},
			}, nil
		},
	}
}

func TestNewTranslatorFromConfig_OrdersStages(t *testing.T) {
	t.Cleanup(ClearFactories)
	ClearFactories()
	RegisterFactory(tagFactory("tag"))

	cfg := config.TranslatorConfig{
		Stages: []config.StageConfig{
			{Name: "second", Type: "tag", Order: 2},
			{Name: "first", Type: "tag", Order: 1},
		},
	}

	tr, err := NewTranslatorFromConfig(cfg, nil, nil)
	require.NoError(t, err)

	out, err := tr.TranslateBatch(context.Background(), []fieldmap.Record{{}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "first;second;", out[0]["trail"])
}

func TestNewTranslatorFromConfig_UnknownStageType(t *testing.T) {
	t.Cleanup(ClearFactories)
	ClearFactories()

	cfg := config.TranslatorConfig{
		Stages: []config.StageConfig{{Name: "a", Type: "missing"}},
	}

	_, err := NewTranslatorFromConfig(cfg, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage a")
	assert.Contains(t, err.Error(), "unknown stage type")
}

func TestNewTranslatorFromConfig_MeteringNeedsCounter(t *testing.T) {
	t.Cleanup(ClearFactories)
	ClearFactories()

	cfg := config.TranslatorConfig{
		Metering: config.MeteringConfig{Enabled: true},
	}

	_, err := NewTranslatorFromConfig(cfg, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no counter")
}

func TestNewTranslatorFromConfig_MeteringAndIsolation(t *testing.T) {
	t.Cleanup(ClearFactories)
	ClearFactories()
	RegisterFactory(StageFactory{
		Type: "reject",
		Create: func(name string, _ map[string]any) (translate.Stage[fieldmap.Record], error) {
			return translate.Stage[fieldmap.Record]{
				Name: name,
				Fn: func(_ context.Context, rec fieldmap.Record) ([]fieldmap.Record, error) {
					if _, ok := rec["bad"]; ok {
						return nil, errors.New("rejected")
					}
					return []fieldmap.Record{rec}, nil
				},
			}, nil
		},
	})

	counter := &fakeCounter{}
	cfg := config.TranslatorConfig{
		Metering: config.MeteringConfig{Enabled: true, Prefix: "ingest"},
		Stages:   []config.StageConfig{{Name: "screen", Type: "reject", Order: 1}},
	}

	tr, err := NewTranslatorFromConfig(cfg, counter, nil)
	require.NoError(t, err)

	out, err := tr.TranslateBatch(context.Background(), []fieldmap.Record{
		{"id": 1},
		{"id": 2, "bad": true},
		{"id": 3},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 1, counter.counts["ingest.screen.error"])
}

func TestNewTranslatorFromConfig_WithoutIsolationAborts(t *testing.T) {
	t.Cleanup(ClearFactories)
	ClearFactories()
	RegisterFactory(StageFactory{
		Type: "fail",
		Create: func(name string, _ map[string]any) (translate.Stage[fieldmap.Record], error) {
			return translate.Stage[fieldmap.Record]{
				Name: name,
				Fn: func(_ context.Context, _ fieldmap.Record) ([]fieldmap.Record, error) {
					return nil, errors.New("boom")
				},
			}, nil
		},
	})

	isolation := false
	cfg := config.TranslatorConfig{
		Isolation: &isolation,
		Stages:    []config.StageConfig{{Name: "explode", Type: "fail", Order: 1}},
	}

	tr, err := NewTranslatorFromConfig(cfg, nil, nil)
	require.NoError(t, err)

	_, err = tr.TranslateBatch(context.Background(), []fieldmap.Record{{"id": 1}})
	require.Error(t, err)
	stage, ok := translate.FailedStage(err)
	require.True(t, ok)
	assert.Equal(t, "explode", stage)
}

func TestNewTranslatorFromConfig_InvalidConfig(t *testing.T) {
	cfg := config.TranslatorConfig{
		Stages: []config.StageConfig{{Name: "", Type: "tag"}},
	}
	_, err := NewTranslatorFromConfig(cfg, nil, nil)
	require.Error(t, err)
}
