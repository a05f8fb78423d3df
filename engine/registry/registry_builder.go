package registry

import (
	"github.com/Carmen-Shannon/oxy-fx/engine/binding"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
	"github.com/Carmen-Shannon/oxy-fx/engine/instance"
)

// RegistryBuilderOption is a functional option for configuring a Registry during construction.
type RegistryBuilderOption func(*registry)

// WithWorkers samples model channels on a pool of n workers during UpdateAll.
// Playback updates always run on the caller's goroutine. n of 1 or less keeps UpdateAll single-threaded.
//
// Parameters:
//   - n: the number of workers
//
// Returns:
//   - RegistryBuilderOption: a function that applies the workers option to a registry
func WithWorkers(n int) RegistryBuilderOption {
	return func(reg *registry) {
		reg.workers = n
	}
}

// WithManagerOptions passes options to the shared effect manager.
//
// Parameters:
//   - opts: the manager options
//
// Returns:
//   - RegistryBuilderOption: a function that applies the manager options to a registry
func WithManagerOptions(opts ...effect.ManagerBuilderOption) RegistryBuilderOption {
	return func(reg *registry) {
		reg.managerOpts = append(reg.managerOpts, opts...)
	}
}

// WithBindingOptions passes options to every channel binding the registry creates.
//
// Parameters:
//   - opts: the binding options
//
// Returns:
//   - RegistryBuilderOption: a function that applies the binding options to a registry
func WithBindingOptions(opts ...binding.BindingBuilderOption) RegistryBuilderOption {
	return func(reg *registry) {
		reg.bindingOpts = append(reg.bindingOpts, opts...)
	}
}

// WithInstanceOptions passes options to every effect instance the registry creates.
//
// Parameters:
//   - opts: the instance options
//
// Returns:
//   - RegistryBuilderOption: a function that applies the instance options to a registry
func WithInstanceOptions(opts ...instance.InstanceBuilderOption) RegistryBuilderOption {
	return func(reg *registry) {
		reg.instanceOpts = append(reg.instanceOpts, opts...)
	}
}
