// Package registry provides stage factory registration and lookup, and
// builds configured translators from the registered factories.
//
// Each stage package registers its factories via init():
//
//	func init() {
//	    registry.RegisterFactory(registry.StageFactory{
//	        Type:        "project",
//	        Description: "copy configured fields into a fresh record",
//	        Create:      newProjectStage,
//	    })
//	}
//
// Stage packages must be imported (via blank import) so their init()
// functions run.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/classicvalues/phased-table-translation/pkg/fieldmap"
	"github.com/classicvalues/phased-table-translation/pkg/translate"
)

// StageFactory defines how to create a stage of a specific type from
// configuration options.
type StageFactory struct {
	// Type is the stage type identifier used in configuration
	// (e.g. "project", "filter", "explode").
	Type string

	// Description is a human-readable description of the stage type.
	Description string

	// Create instantiates a stage with the given name from its
	// configured options.
	Create func(name string, options map[string]any) (translate.Stage[fieldmap.Record], error)
}

var (
	factoryMu  sync.RWMutex
	factoryMap = make(map[string]StageFactory)
)

// RegisterFactory registers a stage factory for a specific type.
// This should be called from init() in each stage package.
// Panics if a factory with the same type is already registered.
func RegisterFactory(f StageFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()

	if f.Type == "" {
		panic("stage factory type cannot be empty")
	}
	if f.Create == nil {
		panic(fmt.Sprintf("stage factory %q must have a Create function", f.Type))
	}
	if _, exists := factoryMap[f.Type]; exists {
		panic(fmt.Sprintf("stage factory %q already registered", f.Type))
	}

	factoryMap[f.Type] = f
}

// GetFactory returns the factory for a stage type, if registered.
func GetFactory(stageType string) (StageFactory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()

	f, ok := factoryMap[stageType]
	return f, ok
}

// ListStageTypes returns all registered stage type names, sorted.
func ListStageTypes() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()

	types := make([]string, 0, len(factoryMap))
	for t := range factoryMap {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// CreateFromFactory creates a stage using the registered factory for
// its type.
func CreateFromFactory(stageType, name string, options map[string]any) (translate.Stage[fieldmap.Record], error) {
	f, ok := GetFactory(stageType)
	if !ok {
		return translate.Stage[fieldmap.Record]{}, fmt.Errorf("unknown stage type: %s (registered types: %v)", stageType, ListStageTypes())
	}
	return f.Create(name, options)
}

// ClearFactories removes all registered factories (for testing only).
func ClearFactories() {
	factoryMu.Lock()
	defer factoryMu.Unlock()

	factoryMap = make(map[string]StageFactory)
}
