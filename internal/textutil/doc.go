// Package textutil sanitizes user-supplied names for safe filesystem use.
package textutil
