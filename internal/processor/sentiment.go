package processor

import (
	"math"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// negations 出现后其后所有命中词的分值取反（一旦出现持续到文本结束）
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nor": {}, "none": {},
	"nobody": {}, "nothing": {}, "nowhere": {}, "cannot": {}, "without": {},
	"don't": {}, "doesn't": {}, "didn't": {}, "isn't": {}, "wasn't": {},
	"aren't": {}, "weren't": {}, "won't": {}, "can't": {}, "couldn't": {}, "shouldn't": {},
}

// ScoreSentiment 基于 AFINN 词表的情感打分：命中词分值之和除以词数，保留两位小数。
// 词表未命中时再用词干查一次；否定词之后的分值取反。空文本返回 0。
func ScoreSentiment(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sum, negator := 0, 1
	for _, w := range words {
		word := normalizeWord(w)
		if word == "" {
			continue
		}
		if _, ok := negations[word]; ok {
			negator = -1
			continue
		}
		sum += negator * lexiconScore(word)
	}
	return round2(float64(sum) / float64(len(words)))
}

func lexiconScore(word string) int {
	if v, ok := afinn[word]; ok {
		return v
	}
	return afinn[english.Stem(word, false)]
}

func normalizeWord(w string) string {
	w = strings.ToLower(w)
	w = strings.ReplaceAll(w, "’", "'")
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// 避免 -0 序列化成 "-0"
		return 0
	}
	return r
}
