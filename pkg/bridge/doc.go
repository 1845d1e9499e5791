// Package bridge wires the compute core's packages — router, cache,
// markdown, template, jsx, watch — into the six operation families spec §6
// names for the host runtime. See bridge.go for the full surface.
package bridge
