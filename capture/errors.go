// SPDX-License-Identifier: EPL-2.0

package capture

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid capture configuration")
	ErrDeviceNotFound = errors.New("capture device not found")
	ErrStopped        = errors.New("capture device stopped")
)
