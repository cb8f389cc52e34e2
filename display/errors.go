// SPDX-License-Identifier: EPL-2.0

package display

import "errors"

var (
	ErrNoSink         = errors.New("no display configured")
	ErrNotConnected   = errors.New("mqtt client not connected")
	ErrPublishTimeout = errors.New("mqtt publish timed out")
)
