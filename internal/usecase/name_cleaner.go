package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultMaxNameLen is the target length of cleaned product names.
const DefaultMaxNameLen = 50

// Names shorter than this after cleaning are redone with a lighter touch.
const minCleanNameLen = 8

// Compiled regex patterns for name cleaning
var (
	emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2702}-\x{27B0}\x{1F900}-\x{1F9FF}\x{1FA00}-\x{1FAFF}\x{2600}-\x{26FF}\x{FE00}-\x{FE0F}\x{200D}\x{2B50}\x{2B55}]+`)
	decorPattern = regexp.MustCompile(`[✅✔☑|★☆♥❤❣♡●•·※✿❀◆◇■□▪▫►◄▶◀→←↑↓✦✧⊕⊗⊛∗†‡‣⁃]`)

	barcodePattern   = regexp.MustCompile(`\b\d{8,}\b`)
	longCodePattern  = regexp.MustCompile(`\b[A-Z0-9]{8,}\b`)
	fccPattern       = regexp.MustCompile(`(?i)\bFCC:?\s*\S+`)
	bracketPattern   = regexp.MustCompile(`【[^】]*】`)
	foreignPattern   = regexp.MustCompile(`(?i)\breloj\s+hombre\b|\bmontre\s+femme\b`)
	oemPattern       = regexp.MustCompile(`\bOEM\b|(?i)\bOUC\d+\b`)
	hypePattern      = regexp.MustCompile(`(?i)\b(?:EXCELLENT|AMAZING|PERFECT|GORGEOUS|BEAUTIFUL|STUNNING|INCREDIBLE)\b!?`)
	carPattern       = regexp.MustCompile(`(?i)tesla|mercedes|bmw|chevrolet|buick|toyota|honda|ford|jeep|dodge|cadillac|lexus|nissan|subaru|mazda|kia|hyundai|key\s*fob|smart\s*key|remote\s*key|car\s*key`)
	yearPrefix       = regexp.MustCompile(`^20(?:2[0-6]|1\d)\s+`)
	newPrefix        = regexp.MustCompile(`(?i)^New\s+`)
	audienceSuffix   = regexp.MustCompile(`(?i)\s+for\s+(?:women|men|woman|man|ladies|girls?|boys?|kids?|teens?|her|him|wife|husband|girlfriend|boyfriend|daughter|son|mother|father|mom|dad|couples?|family|friends?|valentine'?s?(?:\s+day)?|christmas|birthday|anniversary|holiday|weddings?|engagement|party|new\s*year)(?:[,\s].*)?$`)
	fatherChristmas  = regexp.MustCompile(`(?i)\bFather Christmas\b`)
	valentinePattern = regexp.MustCompile(`(?i)\bValentine'?s?\s*(?:Day)?\b|\bValentines?\b`)
	christmasPattern = regexp.MustCompile(`(?i)\bChristmas\b(?:\s+(?:Gift|Edition|Special|Decoratio\w*))?`)
	xmasPattern      = regexp.MustCompile(`(?i)\bXmas\b`)
	orphanPossessive = regexp.MustCompile(`(^|[^\w])'s\b`)
	fillerPhrases    = regexp.MustCompile(`(?i)\b(?:Unique\s+Holiday|Last\s+Minute|Limited\s+Edition|Best\s+Seller|Brand\s+New|High\s+Quality|Top\s+Quality|Best\s+Quality|Premium\s+Quality|Free\s+Shipping|Fast\s+Shipping|Hot\s+Sale|Best\s+Holiays)\b`)
	fillerLeading    = regexp.MustCompile(`(?i)^(?:Fashion|Trendy|Stylish|Creative|Novelty|Luxury|Luxurious|Elegant|Premium|Classic|Happy|Cute|Lovely)\s+`)
	fillerTrailing   = regexp.MustCompile(`(?i)\s+(?:Fashion|Trendy|Stylish|Creative|Novelty|Luxury|Luxurious|Elegant|Premium|Classic|Happy|Cute|Lovely)$`)
	keylessRemote    = regexp.MustCompile(`(?i)\bKeyless\s+Entry\s+Remote\b`)
	trailingGift     = regexp.MustCompile(`(?i)\s+(?:Gift|Present|Surprise)s?\s*$`)
	danglingHappy    = regexp.MustCompile(`(?i)\bHappy\s*$|\bHappy\s*,`)
	trailingBang     = regexp.MustCompile(`\s*!+\s*$`)
	trailingJoiner   = regexp.MustCompile(`(?i)\s+(?:for|with|to|at|by|in|on|of|and|or|the|a|an)\s*$`)
	dashSpacing      = regexp.MustCompile(`\s*–\s*`)
	doubleComma      = regexp.MustCompile(`,\s*,+`)
	trailingComma    = regexp.MustCompile(`\s*,\s*$`)
	leadingComma     = regexp.MustCompile(`^\s*,\s*`)
	trailingDash     = regexp.MustCompile(`\s*[–-]\s*$`)
	emptyParens      = regexp.MustCompile(`\(\s*\)`)
	shortTailPattern = regexp.MustCompile(`,\s*([^,]{1,6})\s*$`)
	mixedUnitWord    = regexp.MustCompile(`^\d+[a-zA-Z]+$`)
)

const edgeNoise = " ,;:-–—|/"

var smartQuotes = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)

// preserveUpper words are always rendered in capitals.
var preserveUpper = map[string]bool{
	"usa": true, "us": true, "uk": true, "uae": true, "led": true, "usb": true,
	"acu": true, "ocp": true, "ucp": true, "bmw": true, "ll": true, "xl": true,
	"xxl": true, "pcs": true, "3d": true, "2d": true, "diy": true, "lcd": true,
	"hd": true, "ac": true, "dc": true, "bbq": true, "id": true, "ii": true,
	"iii": true, "iv": true, "tv": true, "pc": true, "nfl": true, "fob": true,
	"ct": true, "oz": true, "ft": true, "suv": true, "gps": true, "atv": true,
}

// brandNames are capitalized as proper nouns.
var brandNames = map[string]bool{
	"tesla": true, "mercedes-benz": true, "mercedes": true, "chevrolet": true,
	"buick": true, "toyota": true, "honda": true, "ford": true, "jeep": true,
	"dodge": true, "cadillac": true, "lexus": true, "nissan": true, "subaru": true,
	"mazda": true, "kia": true, "hyundai": true, "poedagar": true, "ferrero": true,
	"rocher": true, "godiva": true, "swarovski": true, "pandora": true,
}

// titleJoiners stay lowercase unless they open the name.
var titleJoiners = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "with": true,
	"by": true, "from": true, "as": true, "is": true, "no": true, "up": true,
}

// NameCleaner shortens marketplace product titles into short descriptive names.
type NameCleaner struct {
	maxLen int
	logger *zap.Logger
}

// NewNameCleaner creates a cleaner. maxLen <= 0 uses DefaultMaxNameLen.
func NewNameCleaner(maxLen int, logger *zap.Logger) *NameCleaner {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLen
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NameCleaner{maxLen: maxLen, logger: logger}
}

// Clean strips emoji, codes, marketing filler and occasion phrases from name,
// truncates it at a natural break and applies title case.
func (c *NameCleaner) Clean(name string) string {
	original := name

	name = smartQuotes.Replace(name)

	// Step 1: decoration and codes
	name = emojiPattern.ReplaceAllString(name, " ")
	name = decorPattern.ReplaceAllString(name, " ")
	name = barcodePattern.ReplaceAllString(name, "")
	name = longCodePattern.ReplaceAllString(name, "")
	name = fccPattern.ReplaceAllString(name, "")
	name = bracketPattern.ReplaceAllString(name, "")
	name = foreignPattern.ReplaceAllString(name, "")
	name = oemPattern.ReplaceAllString(name, "")
	name = hypePattern.ReplaceAllString(name, "")
	name = collapseSpaces(name)

	// Step 2: prefixes. Model years matter for car keys.
	if !carPattern.MatchString(name) {
		name = yearPrefix.ReplaceAllString(name, "")
	}
	name = newPrefix.ReplaceAllString(name, "")

	// Step 3: audience and occasion phrases
	name = audienceSuffix.ReplaceAllString(name, "")
	name = fatherChristmas.ReplaceAllString(name, "Santa")
	name = valentinePattern.ReplaceAllString(name, "")
	name = christmasPattern.ReplaceAllString(name, " ")
	name = xmasPattern.ReplaceAllString(name, "")
	name = orphanPossessive.ReplaceAllString(name, "$1")

	// Step 4: filler
	name = fillerPhrases.ReplaceAllString(name, "")
	name = fillerLeading.ReplaceAllString(name, "")
	name = fillerTrailing.ReplaceAllString(name, "")
	name = keylessRemote.ReplaceAllString(name, "Remote Key")
	name = trailingGift.ReplaceAllString(name, "")
	name = danglingHappy.ReplaceAllString(name, "")
	name = trailingBang.ReplaceAllString(name, "")
	name = dedupeWords(name)
	name = trailingJoiner.ReplaceAllString(name, "")

	// Step 5: punctuation left behind by removals
	name = dashSpacing.ReplaceAllString(name, " – ")
	name = doubleComma.ReplaceAllString(name, ",")
	name = trailingComma.ReplaceAllString(name, "")
	name = leadingComma.ReplaceAllString(name, "")
	name = trailingDash.ReplaceAllString(name, "")
	name = emptyParens.ReplaceAllString(name, "")
	name = collapseSpaces(name)
	name = dropShortTail(name)
	name = strings.Trim(name, edgeNoise)

	// Step 6: length and casing
	name = SmartTruncate(name, c.maxLen)
	name = TitleCase(name)
	name = strings.Trim(collapseSpaces(name), edgeNoise)

	if utf8.RuneCountInString(name) < minCleanNameLen {
		name = c.lightClean(original)
	}

	if name != original {
		c.logger.Debug("name cleaned", zap.String("from", original), zap.String("to", name))
	}
	return strings.TrimSpace(name)
}

// lightClean only removes decoration and barcodes; used when full cleaning
// leaves too little.
func (c *NameCleaner) lightClean(name string) string {
	name = emojiPattern.ReplaceAllString(name, " ")
	name = decorPattern.ReplaceAllString(name, " ")
	name = barcodePattern.ReplaceAllString(name, "")
	name = strings.Trim(collapseSpaces(name), edgeNoise)
	name = SmartTruncate(name, c.maxLen)
	name = trailingJoiner.ReplaceAllString(name, "")
	return TitleCase(name)
}

// SmartTruncate shortens name to at most maxLen runes, preferring a separator
// such as " – " and otherwise the last word boundary.
func SmartTruncate(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}

	for _, sep := range []string{" – ", " - ", " — ", " | ", " / "} {
		idx := strings.Index(name, sep)
		if idx < 0 {
			continue
		}
		pos := utf8.RuneCountInString(name[:idx])
		if pos > 10 && pos <= maxLen {
			if candidate := strings.TrimSpace(name[:idx]); utf8.RuneCountInString(candidate) >= 12 {
				return candidate
			}
		}
	}

	truncated := string(runes[:maxLen])
	var result string
	if lastSpace := strings.LastIndex(truncated, " "); utf8.RuneCountInString(truncated[:max(lastSpace, 0)]) > 12 {
		result = strings.TrimRight(truncated[:lastSpace], ",;:-–— ")
	} else {
		result = strings.TrimRight(truncated, ",;:-–— ")
	}
	return trailingJoiner.ReplaceAllString(result, "")
}

// TitleCase capitalizes words while keeping acronyms, brand casing, mixed case
// like "iPhone", unit tokens like "14k" and lowercase joiners.
func TitleCase(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		lower := strings.TrimRight(strings.ToLower(word), ".,;:!?")

		switch {
		case preserveUpper[lower]:
			words[i] = strings.ToUpper(word)
		case lower == "mercedes-benz":
			words[i] = "Mercedes-Benz"
		case brandNames[lower]:
			words[i] = capitalize(word)
		case mixedUnitWord.MatchString(word):
		case titleJoiners[lower] && i > 0:
			words[i] = lower
		case isMixedCase(word):
		default:
			words[i] = capitalize(word)
		}
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// isMixedCase reports words such as "iPhone" whose casing should be kept.
func isMixedCase(word string) bool {
	if word == strings.ToUpper(word) || word == strings.ToLower(word) {
		return false
	}
	_, size := utf8.DecodeRuneInString(word)
	return strings.IndexFunc(word[size:], unicode.IsUpper) >= 0
}

// dedupeWords drops a word that repeats the previous one, e.g. "Hat Hat".
func dedupeWords(name string) string {
	words := strings.Fields(name)
	out := words[:0]
	for i, w := range words {
		if i > 0 && strings.EqualFold(w, words[i-1]) {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// dropShortTail removes up to three short digitless fragments after the last comma.
func dropShortTail(name string) string {
	for i := 0; i < 3; i++ {
		m := shortTailPattern.FindStringSubmatchIndex(name)
		if m == nil || strings.ContainsAny(name[m[2]:m[3]], "0123456789") {
			break
		}
		name = strings.TrimSpace(name[:m[0]])
	}
	return name
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(s, " "))
}
