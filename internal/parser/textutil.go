package parser

import (
	"regexp"
	"strings"
)

var sentenceBoundaryRe = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n+`)

// SplitSentences 朴素句子切分，作为NLP切分器不可用时的退化实现
// 按句末标点与换行切分，去除空白片段
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundaryRe.FindAllStringIndex(text, -1) {
		piece := strings.TrimSpace(text[start:loc[1]])
		if piece != "" {
			sentences = append(sentences, piece)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
