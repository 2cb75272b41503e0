// Package services implements the driving port interfaces.
// Services contain the release workflow logic and orchestrate
// calls to driven ports (adapters).
package services
