package classifier

import "unicode"

// normalizeRunes lowers the text and strips spacing, punctuation and symbol
// noise so trigger matching survives the artifacts OCR leaves between
// characters ("F.o.r.m", "s a v e").
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := foldOCRRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// foldOCRRune maps glyphs OCR commonly confuses with letters back to their
// alphabetic counterparts.
func foldOCRRune(r rune) rune {
	switch r {
	case '0':
		return 'o'
	case '1', '|':
		return 'l'
	case '5':
		return 's'
	case '8':
		return 'b'
	default:
		return r
	}
}

// isNoise identifies characters ignored during trigger matching.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
