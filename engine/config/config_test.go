package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/trigger"
	"golang.org/x/text/language"
)

var noEnv = WithEnvironment(map[string]string{})

const sampleYAML = `
clock:
  frame_rate: 60
trigger:
  threshold: 0.25
instance:
  max_speed: 2
  policies: [edge, frame]
renderer:
  backend: "null"
  vsync: false
locale: ja
effects:
  - name: aura
    path: fx/aura.efk
    duration: 120
    loop: true
  - name: spark
    path: fx/spark.efk
    duration: 30
`

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestParse_YAMLOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), noEnv)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Clock.FrameRate != 60 {
		t.Errorf("FrameRate = %v, want 60", cfg.Clock.FrameRate)
	}
	if cfg.Trigger.Threshold != 0.25 {
		t.Errorf("Threshold = %v, want 0.25", cfg.Trigger.Threshold)
	}
	if cfg.Trigger.FrameScale != 100 {
		t.Errorf("FrameScale = %v, want default 100", cfg.Trigger.FrameScale)
	}
	if cfg.Renderer.VSync {
		t.Error("VSync = true, want false")
	}
	if !cfg.Renderer.MSAA {
		t.Error("MSAA = false, want default true")
	}
	if len(cfg.Effects) != 2 {
		t.Fatalf("len(Effects) = %d, want 2", len(cfg.Effects))
	}

	kinds, err := cfg.PolicyKinds()
	if err != nil {
		t.Fatalf("PolicyKinds() error = %v", err)
	}
	if want := []trigger.Kind{trigger.KindEdge, trigger.KindFrame}; !reflect.DeepEqual(kinds, want) {
		t.Errorf("PolicyKinds() = %v, want %v", kinds, want)
	}

	bt, _ := cfg.BackendType()
	if bt != renderer.BackendTypeNull {
		t.Errorf("BackendType() = %v, want BackendTypeNull", bt)
	}
	tag, _ := cfg.LocaleTag()
	if tag != language.Japanese {
		t.Errorf("LocaleTag() = %v, want %v", tag, language.Japanese)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil, noEnv)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Parse(nil) = %+v, want Default()", cfg)
	}
}

func TestParse_EnvironmentOverrides(t *testing.T) {
	environment := map[string]string{
		"OXYFX_CLOCK_FRAME_RATE":     "24",
		"OXYFX_TRIGGER_FRAME_SCALE":  "50",
		"OXYFX_INSTANCE_POLICIES":    "auto_play",
		"OXYFX_REGISTRY_WORKERS":     "4",
		"OXYFX_RENDERER_DISTORTION":  "false",
		"OXYFX_LOCALE":               "en-US",
		"UNRELATED_CLOCK_FRAME_RATE": "1",
	}
	cfg, err := Parse([]byte(sampleYAML), WithEnvironment(environment))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Clock.FrameRate != 24 {
		t.Errorf("FrameRate = %v, want 24", cfg.Clock.FrameRate)
	}
	if cfg.Trigger.FrameScale != 50 {
		t.Errorf("FrameScale = %v, want 50", cfg.Trigger.FrameScale)
	}
	if cfg.Trigger.Threshold != 0.25 {
		t.Errorf("Threshold = %v, want 0.25 from yaml", cfg.Trigger.Threshold)
	}
	if !reflect.DeepEqual(cfg.Instance.Policies, []string{"auto_play"}) {
		t.Errorf("Policies = %v, want [auto_play]", cfg.Instance.Policies)
	}
	if cfg.Registry.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Registry.Workers)
	}
	if cfg.Renderer.Distortion {
		t.Error("Distortion = true, want false")
	}
	if len(cfg.Effects) != 2 {
		t.Errorf("len(Effects) = %d, want 2", len(cfg.Effects))
	}
}

func TestParse_EnvPrefix(t *testing.T) {
	environment := map[string]string{
		"FX_CLOCK_FRAME_RATE":    "12",
		"OXYFX_CLOCK_FRAME_RATE": "99",
	}
	cfg, err := Parse(nil, WithEnvPrefix("FX_"), WithEnvironment(environment))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Clock.FrameRate != 12 {
		t.Errorf("FrameRate = %v, want 12", cfg.Clock.FrameRate)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "zero frame rate", yaml: "clock: {frame_rate: 0}"},
		{name: "threshold at one", yaml: "trigger: {threshold: 1}"},
		{name: "negative frame scale", yaml: "trigger: {frame_scale: -1}"},
		{name: "zero max speed", yaml: "instance: {max_speed: 0}"},
		{name: "unknown policy", yaml: "instance: {policies: [edge, bounce]}"},
		{name: "unknown backend", yaml: "renderer: {backend: vulkan}"},
		{name: "bad locale", yaml: "locale: not_a_locale!"},
		{name: "unnamed effect", yaml: "effects: [{path: a.efk}]"},
		{name: "duplicate effect", yaml: "effects: [{name: a}, {name: a}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), noEnv)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("clock: [unterminated"), noEnv)
	if err == nil {
		t.Fatal("Parse() error = nil, want a decode error")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Parse() error = %v, want a decode error rather than ErrInvalidConfig", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, noEnv)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Clock.FrameRate != 60 {
		t.Errorf("FrameRate = %v, want 60", cfg.Clock.FrameRate)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestPolicyKinds_Spellings(t *testing.T) {
	cfg := Default()
	cfg.Instance.Policies = []string{"Frame", "auto play", "AutoPlay", "auto-play", " edge "}

	kinds, err := cfg.PolicyKinds()
	if err != nil {
		t.Fatalf("PolicyKinds() error = %v", err)
	}
	want := []trigger.Kind{trigger.KindFrame, trigger.KindAutoPlay, trigger.KindEdge}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("PolicyKinds() = %v, want %v", kinds, want)
	}
}

func TestCatalog(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), noEnv)
	if err != nil {
		t.Fatal(err)
	}

	c := cfg.Catalog()
	if got := c.Names(); !reflect.DeepEqual(got, []string{"aura", "spark"}) {
		t.Fatalf("Names() = %v, want [aura spark]", got)
	}
	a, err := c.Load("aura")
	if err != nil {
		t.Fatal(err)
	}
	want := effect.Asset{Name: "aura", Path: "fx/aura.efk", Duration: 120, Loop: true}
	if *a != want {
		t.Errorf("Load(aura) = %+v, want %+v", *a, want)
	}
}

func TestApplyEffects(t *testing.T) {
	c := effect.NewCatalog(effect.WithAssets(
		effect.Asset{Name: "aura", Path: "fx/aura.efk", Duration: 120, Loop: true},
		effect.Asset{Name: "old", Path: "fx/old.efk", Duration: 10},
		effect.Asset{Name: "spark", Path: "fx/spark.efk", Duration: 20},
	))

	cfg, err := Parse([]byte(sampleYAML), noEnv)
	if err != nil {
		t.Fatal(err)
	}

	changed := cfg.ApplyEffects(c)
	if want := []string{"old", "spark"}; !reflect.DeepEqual(changed, want) {
		t.Errorf("ApplyEffects() = %v, want %v", changed, want)
	}
	if got := c.Names(); !reflect.DeepEqual(got, []string{"aura", "spark"}) {
		t.Errorf("Names() = %v, want [aura spark]", got)
	}
	spark, _ := c.Load("spark")
	if spark.Duration != 30 {
		t.Errorf("spark.Duration = %d, want 30", spark.Duration)
	}

	if changed := cfg.ApplyEffects(c); len(changed) != 0 {
		t.Errorf("second ApplyEffects() = %v, want no changes", changed)
	}
}

func TestOptions_Build(t *testing.T) {
	cfg := Default()
	if got := len(cfg.ClockOptions()); got != 1 {
		t.Errorf("len(ClockOptions()) = %d, want 1", got)
	}
	if got := len(cfg.TriggerOptions()); got != 3 {
		t.Errorf("len(TriggerOptions()) = %d, want 3", got)
	}
	if got := len(cfg.InstanceOptions()); got != 4 {
		t.Errorf("len(InstanceOptions()) = %d, want 4", got)
	}
	if got := len(cfg.RegistryOptions()); got != 4 {
		t.Errorf("len(RegistryOptions()) = %d, want 4", got)
	}
	if got := len(cfg.RendererOptions()); got != 5 {
		t.Errorf("len(RendererOptions()) = %d, want 5", got)
	}
}

func TestWatcher_ReloadsOnRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fx.yaml")
	if err := os.WriteFile(path, []byte("clock: {frame_rate: 30}"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, noEnv)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	tmp := filepath.Join(dir, "fx.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("clock: {frame_rate: 48}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Changes:
			if cfg.Clock.FrameRate == 48 {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watcher error = %v", err)
		case <-timeout:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path, noEnv)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, ok := <-w.Changes; ok {
		t.Error("Changes still open after Close")
	}
}
