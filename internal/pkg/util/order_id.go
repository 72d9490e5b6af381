package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	orderIDSuffixLen = 9
	base36Alphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateOrderID 格式 ORD-<unix millis>-<9碼大寫base36>
// 時間部分遞增，後綴來自 crypto/rand
func GenerateOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), randomBase36(orderIDSuffixLen))
}

func randomBase36(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
		}
		buf[i] = base36Alphabet[v.Int64()]
	}
	return string(buf)
}
