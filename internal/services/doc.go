// Package services defines the error taxonomy shared by pipeline stages and
// external collaborators.
//
// Stage code wraps failures with one of the exported sentinel errors so the
// coordinator can classify them once at the top of a run: input problems fail
// before processing starts, external tool failures carry the tool's raw
// diagnostic output, and cancellation gets its own user-facing message.
package services
