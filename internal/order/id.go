package order

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewID returns "ORD-<base36 millis>-<4 random chars>", upper-cased.
// Collisions are possible in principle and are not checked.
func NewID(now time.Time) string {
	random := uuid.New()
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = base36[int(random[i])%len(base36)]
	}
	return "ORD-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)) + "-" + string(suffix)
}
