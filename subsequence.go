package rulesbot

// Find reports whether the lowercase letters of needle occur in haystack in
// order, not necessarily adjacent. Needle bytes outside 'a'-'z' are skipped.
// The comparison is case-sensitive, so callers lowercase the haystack (and
// the needle, if they want its uppercase letters to count). An empty needle
// always matches.
func Find(haystack, needle string) bool {
	hi, ni := 0, 0
	for {
		for ni < len(needle) && (needle[ni] < 'a' || needle[ni] > 'z') {
			ni++
		}
		if ni == len(needle) {
			return true
		}
		for hi < len(haystack) && haystack[hi] != needle[ni] {
			hi++
		}
		if hi == len(haystack) {
			return false
		}
		hi++
		ni++
	}
}
