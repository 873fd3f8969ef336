// Package deploy implements the blue-green deployment orchestrator.
//
// A deployment walks a fixed, fully sequential state machine:
//
//	Init → [Backup] → Provision → Activate → Reload → HealthCheck → {Commit | Rollback}
//
// Backup is optional and its failure is only a warning. Provision,
// Activate, and Reload failures abort the run. Only a failed health check
// triggers an automatic rollback to the previous release; a reload
// failure deliberately does not. Rollback itself is not health-checked —
// the previous release is assumed to still be good.
package deploy
