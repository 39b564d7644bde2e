//go:build hwydebug

package datamover

const debugChecks = true
