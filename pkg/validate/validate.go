// Package validate holds pure input validators shared by the services.
package validate

import (
	"math"
	"regexp"
	"strings"
)

var walletAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WalletAddress reports whether s is a well-formed EVM address.
func WalletAddress(s string) bool {
	return walletAddressRe.MatchString(s)
}

// NormalizeWallet lower-cases an address for storage and lookup. Wallet
// addresses are always persisted lower-case.
func NormalizeWallet(s string) string {
	return strings.ToLower(s)
}

// ScoreInRange reports whether score is a finite number within [min, max].
func ScoreInRange(score float64, min, max int) bool {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return false
	}
	return score >= float64(min) && score <= float64(max)
}

// LanguageSupported reports whether lang is one of the configured language
// codes. An empty lang means "no filter" and is always accepted.
func LanguageSupported(lang string, supported []string) bool {
	if lang == "" {
		return true
	}
	for _, s := range supported {
		if s == lang {
			return true
		}
	}
	return false
}

// ClampLimit normalizes a page size: non-positive values fall back to def,
// values above max are capped.
func ClampLimit(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// ClampOffset normalizes a page offset: negative values become 0.
func ClampOffset(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
