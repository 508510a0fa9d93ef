package tracker

import "strings"

// Normalize maps a venue-specific ticker to the canonical base-asset key
// used for cross-venue comparison: uppercase, strip the "_USDT"/"USDT"
// quote suffix, then drop separator characters. The key is never displayed.
// An input like "USDT" normalizes to the empty string, which is still a
// valid key.
func Normalize(symbol string) string {
	key := strings.ToUpper(symbol)
	key = strings.ReplaceAll(key, "_USDT", "")
	key = strings.ReplaceAll(key, "USDT", "")
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")
	return key
}
