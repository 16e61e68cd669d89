package coach

// EmotionUnknown is stored when classification fails or yields nothing usable.
const EmotionUnknown = "N/A"

// EmotionLabels is the fixed set a journal entry may be tagged with.
var EmotionLabels = []string{"행복", "기쁨", "보통", "슬픔", "화남"}

// ValidEmotion reports whether label belongs to the fixed set
// (EmotionUnknown included).
func ValidEmotion(label string) bool {
	if label == EmotionUnknown {
		return true
	}
	for _, l := range EmotionLabels {
		if l == label {
			return true
		}
	}
	return false
}

// NormalizeEmotion maps an arbitrary classifier output onto the fixed
// label set, falling back to EmotionUnknown for anything else.
func NormalizeEmotion(label string) string {
	if ValidEmotion(label) {
		return label
	}
	return EmotionUnknown
}
