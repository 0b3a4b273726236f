package processor

import "strings"

// Topic 固定的主题集合
type Topic string

const (
	TopicPolitics Topic = "politics"
	TopicHealth   Topic = "health"
	TopicWorld    Topic = "world"
)

// Topics 枚举顺序同时决定平票时的归属：先出现的主题胜出
var Topics = []Topic{TopicPolitics, TopicHealth, TopicWorld}

var topicKeywords = map[Topic][]string{
	TopicPolitics: {
		"government", "minister", "election", "party", "parliament", "policy", "congress",
		"bjp", "political", "leader", "democracy", "vote", "campaign",
	},
	TopicHealth: {
		"hospital", "medical", "health", "disease", "covid", "doctor", "vaccine",
		"treatment", "patient", "medicine", "healthcare", "wellness", "clinic",
	},
	TopicWorld: {
		"international", "global", "foreign", "world", "diplomatic", "embassy", "overseas",
		"bilateral", "multinational", "united nations", "summit", "treaty",
	},
}

// ClassifyTopic 统计每个主题命中关键词（子串匹配）的词数，取最高者。
// 全部为 0 时同样按枚举顺序返回第一个主题，不存在“未分类”。
func ClassifyTopic(text string) Topic {
	words := strings.Fields(strings.ToLower(text))

	best := Topics[0]
	bestScore := -1
	for _, topic := range Topics {
		score := 0
		for _, w := range words {
			if containsAny(w, topicKeywords[topic]) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = topic, score
		}
	}
	return best
}

func containsAny(word string, keywords []string) bool {
	if word == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(word, k) {
			return true
		}
	}
	return false
}
