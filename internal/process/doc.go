// Package process holds the platform-specific pieces of renderer process
// control: process-group setup at launch and tree kill on timeout.
package process
