//go:build !hwydebug

package datamover

// debugChecks enables stream shape assertions; build with -tags hwydebug.
const debugChecks = false
