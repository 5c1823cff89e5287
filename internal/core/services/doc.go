// Package services implements the driving port interfaces.
// Services contain the migration logic and orchestrate
// calls to driven ports (adapters).
//
// The pipeline is strictly sequential:
//
//   - Extractor reads every configured table into Records
//   - Loader writes each Record keyed by its timestamp, then compacts
//   - Migrator runs the two in order and reports counts
//   - Inspector reads a migrated store back for verification
//
// Services depend only on domain, the ports and the logger.
package services
