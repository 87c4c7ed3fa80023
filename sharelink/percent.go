package sharelink

import (
	"fmt"
	"strings"
)

// Cặp percentEncode/percentDecode tái hiện đúng ngữ nghĩa
// encodeURIComponent/decodeURIComponent: escape mọi byte UTF-8 ngoài tập
// A-Za-z0-9 -_.!~*'(). Không dùng net/url vì QueryEscape đổi space thành '+'
// và escape một tập ký tự khác — làm hỏng luật round-trip với payload sinh
// bởi bản web.

const upperhex = "0123456789ABCDEF"

func shouldEscape(b byte) bool {
	switch {
	case 'A' <= b && b <= 'Z', 'a' <= b && b <= 'z', '0' <= b && b <= '9':
		return false
	}
	switch b {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return false
	}
	return true
}

func percentEncode(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if shouldEscape(b) {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[b>>4])
			sb.WriteByte(upperhex[b&0x0F])
		} else {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

func percentDecode(s string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			sb.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", fmt.Errorf("chuỗi percent-encoding cụt tại vị trí %d", i)
		}
		hi, ok1 := unhex(s[i+1])
		lo, ok2 := unhex(s[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("percent-encoding không hợp lệ %q", s[i:i+3])
		}
		sb.WriteByte(hi<<4 | lo)
		i += 2
	}
	return sb.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
