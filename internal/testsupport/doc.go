// Package testsupport holds shared test fixtures: isolated config
// directories, generated config files, and a fake management API server.
package testsupport
