package stores

import (
	"fmt"
	"math/rand"
)

const orderCodePrefix = "RC"

// NewOrderCode returns a short code for the pickup counter display. The
// number is drawn from 1-9999, so two orders can share a code; lookups must
// always go through the order id or reference.
func NewOrderCode() string {
	return fmt.Sprintf("%s%03d", orderCodePrefix, rand.Intn(9999)+1)
}
