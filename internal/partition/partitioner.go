package partition

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"strings"
)

var (
	ErrInvalidKey = errors.New("order id is empty or blank")
	ErrNoLanes    = errors.New("lane count must be at least 1")
)

// Partition maps an order_id to a lane in [0, lanes). Pure and stable: the
// same order_id always lands on the same lane for a given lane count, across
// calls and process restarts, so per-order delivery order is preserved end
// to end. Hashing anything else (customer_id, round-robin) would break that.
//
// Scheme: first 8 bytes of SHA-256(order_id), big-endian, mod lanes.
func Partition(orderID string, lanes int) (int, error) {
	if lanes < 1 {
		return 0, ErrNoLanes
	}
	if strings.TrimSpace(orderID) == "" {
		return 0, ErrInvalidKey
	}

	sum := sha256.Sum256([]byte(orderID))
	hash := binary.BigEndian.Uint64(sum[:8])
	return int(hash % uint64(lanes)), nil
}
