package payment

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Alipay reports local Beijing time without a zone.
var shanghai = time.FixedZone("CST", 8*3600)

func fenToYuan(fen int64) string {
	return fmt.Sprintf("%d.%02d", fen/100, fen%100)
}

func yuanToFen(s string) int64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}
