// SPDX-License-Identifier: EPL-2.0

package payload

import "errors"

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrFieldTooLong     = errors.New("field content longer than 255 bytes")
)
