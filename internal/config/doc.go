// Package config defines the project configuration for aynactl and its
// loading, defaulting, and validation logic.
//
// Configuration lives in an ayna.yaml file next to the operator, not in
// ambient process state: every path, port, service name, probe, and
// retention parameter the orchestrator uses is an explicit field here, so
// one binary can drive any number of projects and environments and the
// orchestrator can be constructed in isolation for tests.
package config
