// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources and scripted decoders
// for tests. It does not import the packages it helps test.
package audiotest
