// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF recordings with github.com/go-audio/aiff.
//
// Signed PCM of 8, 16, 24 or 32 bits is accepted. AIFF-C compressed files
// are rejected.
package aiff
