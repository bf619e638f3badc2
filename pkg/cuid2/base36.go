package cuid2

import "strconv"

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// limbBase is the intermediate base for arbitrary-precision work.
// Chosen so limb*16^8 and limb*36 stay well inside uint64 bounds.
const limbBase = 100000000

// fastPathMaxHexLen is the longest hex input converted with native
// integer arithmetic: 16^14 < 2^64.
const fastPathMaxHexLen = 14

// HexToBase36 converts a hexadecimal string to its base-36
// representation without a big-integer dependency.
//
// The function is total: parsing is case-insensitive and any
// character outside 0-9a-fA-F contributes digit value zero. That
// zero-folding is a compatibility quirk inherited from the original
// implementation, not a validation layer; callers are expected to
// pass real hex digests. Empty input yields "0".
func HexToBase36(hex string) string {
	if len(hex) <= fastPathMaxHexLen {
		var v uint64
		for i := 0; i < len(hex); i++ {
			v = v<<4 | uint64(hexDigit(hex[i]))
		}
		return strconv.FormatUint(v, 36)
	}

	// General path: little-endian limbs in base limbBase, built from
	// 8-hex-digit chunks, then repeated long division by 36.
	limbs := []uint64{0}
	i := 0
	for i < len(hex) {
		chunkLen := 8
		if rem := len(hex) - i; rem < chunkLen {
			chunkLen = rem
		}
		// Leading chunk takes the length remainder so every later
		// chunk is a full 8 digits.
		if i == 0 && len(hex)%8 != 0 {
			chunkLen = len(hex) % 8
		}
		var chunk uint64
		for j := 0; j < chunkLen; j++ {
			chunk = chunk<<4 | uint64(hexDigit(hex[i+j]))
		}
		limbs = mulAdd(limbs, uint64(1)<<uint(4*chunkLen), chunk)
		i += chunkLen
	}

	out := make([]byte, 0, len(hex))
	for !isZero(limbs) {
		var rem uint64
		limbs, rem = divmod36(limbs)
		out = append(out, base36Digits[rem])
	}
	if len(out) == 0 {
		return "0"
	}
	// Digits were produced least-significant first.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return string(out)
}

// hexDigit maps a character to its hex value, folding anything
// outside the hex character classes to zero.
func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}

// mulAdd computes limbs*mult + add in place, propagating carries in
// base limbBase. mult is at most 16^8, so each partial product fits a
// uint64 with room for the carry.
func mulAdd(limbs []uint64, mult, add uint64) []uint64 {
	carry := add
	for i := range limbs {
		v := limbs[i]*mult + carry
		limbs[i] = v % limbBase
		carry = v / limbBase
	}
	for carry > 0 {
		limbs = append(limbs, carry%limbBase)
		carry /= limbBase
	}
	return limbs
}

// divmod36 divides the limb sequence by 36, most-significant limb
// first, returning the shortened quotient and the remainder (0-35).
func divmod36(limbs []uint64) ([]uint64, uint64) {
	var rem uint64
	for i := len(limbs) - 1; i >= 0; i-- {
		cur := rem*limbBase + limbs[i]
		limbs[i] = cur / 36
		rem = cur % 36
	}
	// Trim leading zero limbs so isZero terminates the digit loop.
	for len(limbs) > 1 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	return limbs, rem
}

func isZero(limbs []uint64) bool {
	return len(limbs) == 1 && limbs[0] == 0
}
