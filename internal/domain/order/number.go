package order

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// orderNumberPrefix is the human-readable marker on every order number
const orderNumberPrefix = "BDO-"

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber builds an order number from the current time in base36
// plus a short random suffix, e.g. BDO-MF3K2H1Q-7X4A. The timestamp
// keeps numbers roughly sortable; the suffix avoids collisions between
// orders placed in the same millisecond. A unique index on the column
// is the final guarantee - inserts fail loudly on a collision rather
// than overwriting.
func NewOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return orderNumberPrefix + ts + "-" + randomBase36(4)
}

func randomBase36(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is
			// broken; fall back to a time-derived digit.
			b[i] = base36Alphabet[time.Now().UnixNano()%36]
			continue
		}
		b[i] = base36Alphabet[idx.Int64()]
	}
	return string(b)
}
