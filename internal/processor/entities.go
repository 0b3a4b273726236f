package processor

import (
	"regexp"
	"strings"
	"unicode"
)

// Entities 粗粒度的命名实体：已知地名 + 首字母大写的疑似人名
type Entities struct {
	States []string `json:"states"`
	People []string `json:"people"`
}

// places 固定地名表，按顺序输出
var places = []string{
	"delhi", "mumbai", "kerala", "gujarat", "punjab",
	"kolkata", "chennai", "bengaluru", "hyderabad", "karnataka",
	"maharashtra", "tamil nadu", "uttar pradesh", "bihar", "rajasthan",
	"assam", "telangana", "odisha", "jammu", "kashmir",
}

// 单个大写字母 + 至少一个小写字母；句首普通词也会被命中，属于已知的近似
var personPattern = regexp.MustCompile(`^[A-Z][a-z]+$`)

// ExtractEntities 地名按小写子串匹配；人名取分词后符合 personPattern 且长度大于 2 的词，去重保序
func ExtractEntities(text string) Entities {
	ents := Entities{States: []string{}, People: []string{}}

	lower := strings.ToLower(text)
	for _, p := range places {
		if strings.Contains(lower, p) {
			ents.States = append(ents.States, p)
		}
	}

	seen := make(map[string]struct{})
	for _, w := range tokenize(text) {
		if len(w) <= 2 || !personPattern.MatchString(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		ents.People = append(ents.People, w)
	}
	return ents
}

// tokenize 按非字母数字下划线切分
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
