// Package rescode генерирует человекочитаемые коды бронирований
// вида RES-<timestamp base36>-<4 случайных символа>.
package rescode

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	prefix      = "RES"
	suffixLen   = 4
	suffixChars = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Generate возвращает новый код бронирования.
// Уникальность кода гарантируется не здесь, а уникальным индексом в БД.
func Generate(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return fmt.Sprintf("%s-%s-%s", prefix, ts, randomSuffix())
}

func randomSuffix() string {
	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand на практике не возвращает ошибок; fallback на timestamp
		return strconv.FormatInt(time.Now().UnixNano()%1679616, 36)
	}
	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(suffixChars[int(b)%len(suffixChars)])
	}
	return sb.String()
}
