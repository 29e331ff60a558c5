package model

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// 机构与日期的启发式识别模式
// prose 的NER只标注 PERSON/GPE，院校与日期实体用固定模式补齐
var (
	institutionRe = regexp.MustCompile(`(?i)\b(university|college|institute|school|academy|polytechnic)\b`)
	yearRangeRe   = regexp.MustCompile(`\b(?:19|20)\d{2}\s*[-–]\s*(?:(?:19|20)\d{2}|present|current|now)\b`)
	monthYearRe   = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(?:19|20)\d{2}\b`)
	bareYearRe    = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// ProseRecognizer 基于 prose 的命名实体识别与句子切分
type ProseRecognizer struct{}

// NewProseRecognizer 创建识别器，prose 的模型数据随包内置，无外部文件依赖
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Entities 识别文本中的人名、机构与日期实体
func (r *ProseRecognizer) Entities(ctx context.Context, text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("构建NLP文档失败: %w", err)
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		if ent.Label == "PERSON" {
			entities = append(entities, Entity{Text: ent.Text, Label: LabelPerson})
		}
	}

	// 机构：按行扫描，含院校关键词的整行作为候选机构
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !institutionRe.MatchString(line) || seen[line] {
			continue
		}
		seen[line] = true
		entities = append(entities, Entity{Text: line, Label: LabelOrg})
	}

	// 日期：年份区间优先，其次月份+年份，最后孤立年份
	// 已收录区间所覆盖的年份不再单独上报
	var recorded []string
	covered := func(s string) bool {
		for _, r := range recorded {
			if strings.Contains(strings.ToLower(r), strings.ToLower(s)) {
				return true
			}
		}
		return false
	}
	for _, re := range []*regexp.Regexp{yearRangeRe, monthYearRe, bareYearRe} {
		for _, m := range re.FindAllString(text, -1) {
			if covered(m) {
				continue
			}
			recorded = append(recorded, m)
			entities = append(entities, Entity{Text: m, Label: LabelDate})
		}
	}

	return entities, nil
}

// Sentences 切分文本为句子
func (r *ProseRecognizer) Sentences(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("句子切分失败: %w", err)
	}

	sentences := make([]string, 0, len(doc.Sentences()))
	for _, s := range doc.Sentences() {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences, nil
}
