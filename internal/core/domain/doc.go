// Package domain defines the core entities for wpmigrate.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceRow: Driver-native column values for one source row
//   - Record: A post coerced into semantic types, ready for loading
//   - StoreEntry: A key/value pair as written to the ordered store
//   - MigrationConfig: The resolved run configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
