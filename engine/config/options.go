package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-fx/engine/binding"
	"github.com/Carmen-Shannon/oxy-fx/engine/clock"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
	"github.com/Carmen-Shannon/oxy-fx/engine/instance"
	"github.com/Carmen-Shannon/oxy-fx/engine/registry"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/trigger"
	"golang.org/x/text/language"
)

// LocaleTag parses the configured locale. An empty locale is English.
//
// Returns:
//   - language.Tag: the parsed tag
//   - error: an error wrapping ErrInvalidConfig if the locale is not a BCP 47 tag
func (c Config) LocaleTag() (language.Tag, error) {
	if c.Locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, c.Locale, err)
	}
	return tag, nil
}

// PolicyKinds resolves the configured policy names. Names are case-insensitive and accept "auto_play",
// "autoplay" and "auto play" for the auto-play policy.
//
// Returns:
//   - []trigger.Kind: the enabled policies in configuration order, without duplicates
//   - error: an error wrapping ErrInvalidConfig for an unknown name
func (c Config) PolicyKinds() ([]trigger.Kind, error) {
	kinds := make([]trigger.Kind, 0, len(c.Instance.Policies))
	var seen [trigger.KindCount]bool
	for _, name := range c.Instance.Policies {
		k, ok := parseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, name)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func parseKind(name string) (trigger.Kind, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "", "-", "", " ", "").Replace(n)
	switch n {
	case "edge":
		return trigger.KindEdge, true
	case "autoplay":
		return trigger.KindAutoPlay, true
	case "frame":
		return trigger.KindFrame, true
	default:
		return 0, false
	}
}

// BackendType resolves the configured renderer backend name.
//
// Returns:
//   - renderer.RendererBackendType: the backend
//   - error: an error wrapping ErrInvalidConfig for an unknown name
func (c Config) BackendType() (renderer.RendererBackendType, error) {
	switch strings.ToLower(strings.TrimSpace(c.Renderer.Backend)) {
	case "", "wgpu", "webgpu":
		return renderer.BackendTypeWGPU, nil
	case "null", "headless":
		return renderer.BackendTypeNull, nil
	default:
		return 0, fmt.Errorf("%w: unknown renderer backend %q", ErrInvalidConfig, c.Renderer.Backend)
	}
}

// Asset converts one effect entry into a catalog asset.
func (e EffectConfig) Asset() effect.Asset {
	return effect.Asset{
		Name:       e.Name,
		Path:       e.Path,
		Duration:   e.Duration,
		Loop:       e.Loop,
		Distortion: e.Distortion,
	}
}

// Assets converts the effect list into catalog assets.
//
// Returns:
//   - []effect.Asset: one asset per configured effect, in configuration order
func (c Config) Assets() []effect.Asset {
	assets := make([]effect.Asset, len(c.Effects))
	for i, e := range c.Effects {
		assets[i] = e.Asset()
	}
	return assets
}

// Catalog builds an asset catalog holding every configured effect.
//
// Returns:
//   - effect.Catalog: the populated catalog
func (c Config) Catalog() effect.Catalog {
	return effect.NewCatalog(effect.WithAssets(c.Assets()...))
}

// ClockOptions returns the frame clock options.
func (c Config) ClockOptions() []clock.ClockBuilderOption {
	return []clock.ClockBuilderOption{clock.WithFrameRate(c.Clock.FrameRate)}
}

// TriggerOptions returns the options shared by every trigger policy.
func (c Config) TriggerOptions() []trigger.Option {
	return []trigger.Option{
		trigger.WithThreshold(c.Trigger.Threshold),
		trigger.WithFrameScale(c.Trigger.FrameScale),
		trigger.WithAutoPlayGate(c.Trigger.AutoPlayGate),
	}
}

// InstanceOptions returns the options applied to every effect instance. The configuration must be valid.
func (c Config) InstanceOptions() []instance.InstanceBuilderOption {
	kinds, _ := c.PolicyKinds()
	scale := c.Instance.Scale
	if scale <= 0 {
		scale = 1
	}
	return []instance.InstanceBuilderOption{
		instance.WithPolicies(kinds...),
		instance.WithScale(scale, scale, scale),
		instance.WithMaxSpeed(c.Instance.MaxSpeed),
		instance.WithPolicyOptions(c.TriggerOptions()...),
	}
}

// RegistryOptions returns the registry options, including the manager, binding and instance options.
// The configuration must be valid.
func (c Config) RegistryOptions() []registry.RegistryBuilderOption {
	tag, _ := c.LocaleTag()
	opts := []registry.RegistryBuilderOption{
		registry.WithWorkers(c.Registry.Workers),
		registry.WithBindingOptions(binding.WithLocale(tag)),
		registry.WithInstanceOptions(c.InstanceOptions()...),
	}
	if c.Registry.MaxPlaybacks > 0 {
		opts = append(opts, registry.WithManagerOptions(effect.WithMaxPlaybacks(c.Registry.MaxPlaybacks)))
	}
	return opts
}

// RendererOptions returns the renderer options for the configured window size.
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	mode := renderer.PresentModeVSync
	if !c.Renderer.VSync {
		mode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAAOff
	if c.Renderer.MSAA {
		msaa = renderer.MSAA4x
	}
	return []renderer.RendererBuilderOption{
		renderer.WithViewport(c.Window.Width, c.Window.Height),
		renderer.WithDistortion(c.Renderer.Distortion),
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(c.Renderer.Software),
	}
}

// ApplyEffects synchronises a catalog with the configured effect list. Effects missing from the configuration
// are deleted and new or modified ones are stored.
//
// Parameters:
//   - catalog: the catalog to update
//
// Returns:
//   - []string: the sorted names that were added, changed or removed
func (c Config) ApplyEffects(catalog effect.Catalog) []string {
	wanted := make(map[string]effect.Asset, len(c.Effects))
	for _, e := range c.Effects {
		wanted[e.Name] = e.Asset()
	}

	var changed []string
	for _, name := range catalog.Names() {
		if _, ok := wanted[name]; !ok {
			catalog.Delete(name)
			changed = append(changed, name)
		}
	}
	for name, a := range wanted {
		cur, err := catalog.Load(name)
		if err == nil && *cur == a {
			continue
		}
		catalog.Put(a)
		changed = append(changed, name)
	}
	sort.Strings(changed)
	return changed
}
