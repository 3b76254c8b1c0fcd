package file

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cajal/microns-kit/internal/core/domain"
	"github.com/cajal/microns-kit/internal/core/ports/driven"
)

// storesPrefix is the config namespace holding external store specs.
const storesPrefix = "stores"

// RegisterStores merges named external store specs into the configuration.
// Existing specs with the same name are replaced; other specs are kept.
func RegisterStores(cfg driven.ConfigStore, specs map[string]domain.StoreSpec) error {
	for name, spec := range specs {
		if name == "" {
			return fmt.Errorf("%w: store name is required", domain.ErrInvalidInput)
		}
		prefix := storesPrefix + "." + name
		if err := cfg.Set(prefix+".protocol", spec.Protocol); err != nil {
			return err
		}
		if err := cfg.Set(prefix+".location", spec.Location); err != nil {
			return err
		}
		if err := cfg.Set(prefix+".stage", spec.Stage); err != nil {
			return err
		}
	}
	return nil
}

// GetStore returns the registered spec for name.
func GetStore(cfg driven.ConfigStore, name string) (domain.StoreSpec, error) {
	prefix := storesPrefix + "." + name
	if _, ok := cfg.Get(prefix + ".protocol"); !ok {
		return domain.StoreSpec{}, fmt.Errorf("%w: store %q", domain.ErrNotFound, name)
	}
	return domain.StoreSpec{
		Protocol: cfg.GetString(prefix + ".protocol"),
		Location: cfg.GetString(prefix + ".location"),
		Stage:    cfg.GetString(prefix + ".stage"),
	}, nil
}

// StoreNames returns the names of all registered stores, sorted.
func StoreNames(cfg driven.ConfigStore) []string {
	seen := map[string]bool{}
	names := []string{}
	// Keys are flattened as stores.<name>.<field>.
	for key := range allKeys(cfg) {
		rest, ok := strings.CutPrefix(key, storesPrefix+".")
		if !ok {
			continue
		}
		name, _, ok := strings.Cut(rest, ".")
		if ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// allKeys exposes the flattened key set of stores that support it.
func allKeys(cfg driven.ConfigStore) map[string]struct{} {
	type keyLister interface {
		Keys() []string
	}
	keys := map[string]struct{}{}
	if kl, ok := cfg.(keyLister); ok {
		for _, k := range kl.Keys() {
			keys[k] = struct{}{}
		}
	}
	return keys
}
