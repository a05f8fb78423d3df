package effect

// ManagerBuilderOption is a functional option for configuring a Manager during construction.
type ManagerBuilderOption func(*manager)

// WithMaxPlaybacks is an option builder that caps the number of concurrent playbacks.
// Play returns InvalidHandle while the manager is full. A value of 0 or less removes the cap.
//
// Parameters:
//   - n: the maximum number of live playbacks
//
// Returns:
//   - ManagerBuilderOption: a function that applies the capacity option to a manager
func WithMaxPlaybacks(n int) ManagerBuilderOption {
	return func(m *manager) {
		m.maxPlaybacks = n
	}
}
