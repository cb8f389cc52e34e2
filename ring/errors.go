// SPDX-License-Identifier: EPL-2.0

package ring

import "errors"

var (
	ErrInvalidCapacity = errors.New("ring capacity must be positive")
	ErrConsumeTooLarge = errors.New("consume length exceeds available samples")
)
