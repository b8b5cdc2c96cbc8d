// Package preflight provides readiness checks for the management API and
// the filesystem paths rabbit-tools touches.
//
// The CLI "rabbit-tools config validate" command runs RunAll and renders the
// results as a table. Individual checks take small interfaces so they can be
// exercised without a live broker.
package preflight
