// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them. For relcut most adapters wrap external commands (git,
// gpg, svn) that are treated as black boxes: each call either succeeds
// or returns an error carrying the tool's output.
//
// # Required Interfaces
//
//   - Git: Repository state, mutation, archive and push operations
//   - Signer: Detached artifact signing
//   - Checksummer: Digest sidecar generation
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DistStore: Distribution store publishing. Only needed in publish mode.
//   - HistoryStore: Local release history. Without it, runs are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
