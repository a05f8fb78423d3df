//go:build !oxyfx_debug

package binding

const debugChecks = false
