package chat

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Initials derives a two-character avatar label from an identifier. For
// emails only the local part is used.
func Initials(identifier string) string {
	local := identifier
	if at := strings.IndexByte(identifier, '@'); at >= 0 {
		local = identifier[:at]
	}
	runes := []rune(local)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// AvatarColor maps an identifier to a deterministic HSL color. Equal inputs
// always produce equal colors, so the same sender renders consistently
// everywhere.
func AvatarColor(identifier string) string {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	hue := h.Sum32() % 360
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue)
}
