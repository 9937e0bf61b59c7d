package provider

// A-share symbol conventions. Codes leading with '6' trade on Shanghai,
// everything else on Shenzhen; each provider spells the market differently.

// ValidCode reports whether code is a 6-digit A-share stock code.
func ValidCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isShanghai reports whether the code belongs to the Shanghai exchange.
func isShanghai(code string) bool {
	return len(code) > 0 && code[0] == '6'
}

// PrefixedSymbol returns the sh/sz-prefixed form used by Sina and Tencent.
func PrefixedSymbol(code string) string {
	if isShanghai(code) {
		return "sh" + code
	}
	return "sz" + code
}

// SecID returns the EastMoney security id ("1.600000" / "0.000001").
func SecID(code string) string {
	if isShanghai(code) {
		return "1." + code
	}
	return "0." + code
}

// NetEaseSymbol returns the NetEase feed code ("0600000" / "1000001").
func NetEaseSymbol(code string) string {
	if isShanghai(code) {
		return "0" + code
	}
	return "1" + code
}

// YahooSymbol returns the Yahoo Finance ticker ("600000.SS" / "000001.SZ").
func YahooSymbol(code string) string {
	if isShanghai(code) {
		return code + ".SS"
	}
	return code + ".SZ"
}
