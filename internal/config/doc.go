// Package config provides configuration management for thesiskit.
//
// Configuration comes from three sources, in increasing priority:
//   - built-in defaults (NewConfig)
//   - the .thesiskit YAML file (per-dataset load profiles and defaults)
//   - CLI flags
//
// Design decision: A single flat Config struct is passed through the
// application via dependency injection rather than global state. Validation
// happens once after CLI parsing so failures surface before any work starts.
package config
