package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/model"
)

// 测试用实体识别器桩，返回固定实体，句子切分退化为标点切分
type stubRecognizer struct {
	entities []model.Entity
	err      error
}

func (s *stubRecognizer) Entities(ctx context.Context, text string) ([]model.Entity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entities, nil
}

func (s *stubRecognizer) Sentences(ctx context.Context, text string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return SplitSentences(text), nil
}

// 测试用模型资源提供者桩
type stubProvider struct {
	recognizer model.EntityRecognizer
	recErr     error
	embedder   model.TextEmbedder
	embErr     error
}

func (p *stubProvider) Embedder() (model.TextEmbedder, error) {
	return p.embedder, p.embErr
}

func (p *stubProvider) Recognizer() (model.EntityRecognizer, error) {
	if p.recErr != nil {
		return nil, p.recErr
	}
	return p.recognizer, nil
}

func newTestExtractor(recognizer model.EntityRecognizer) *EntityExtractor {
	return NewEntityExtractor(&stubProvider{recognizer: recognizer})
}

const sampleHeader = "Jane A. Doe\nSoftware Engineer\njane.doe@example.com"

// TestExtractNameFromEntities 人名实体通过校验后取文档序第一个候选
func TestExtractNameFromEntities(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{entities: []model.Entity{
		{Text: "Jane A. Doe", Label: model.LabelPerson},
		{Text: "John Smith", Label: model.LabelPerson},
	}})

	assert.Equal(t, "Jane A. Doe", extractor.ExtractName(context.Background(), sampleHeader))
}

// TestExtractNameFiltersInvalidCandidates 含数字、含@、单词过少的候选被过滤
func TestExtractNameFiltersInvalidCandidates(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{entities: []model.Entity{
		{Text: "Jane4 Doe", Label: model.LabelPerson},       // 含数字
		{Text: "jane.doe@example.com", Label: model.LabelPerson}, // 邮箱
		{Text: "Jane", Label: model.LabelPerson},             // 单词不足
		{Text: "Jane A. Doe", Label: model.LabelPerson},
	}})

	assert.Equal(t, "Jane A. Doe", extractor.ExtractName(context.Background(), sampleHeader))
}

// TestExtractNameFallback 识别器不可用时回退为第一非空行
func TestExtractNameFallback(t *testing.T) {
	extractor := NewEntityExtractor(&stubProvider{recErr: errors.New("识别器不可用")})

	assert.Equal(t, "Jane A. Doe", extractor.ExtractName(context.Background(), sampleHeader))
	// 首行不满足条件时返回空
	assert.Equal(t, "", extractor.ExtractName(context.Background(), "Resume 2024\nJane A. Doe"))
}

// TestExtractEmail 取第一个合法邮箱并转为小写
func TestExtractEmail(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{})

	assert.Equal(t, "jane.doe@example.com", extractor.ExtractEmail(sampleHeader))
	assert.Equal(t, "first@example.org", extractor.ExtractEmail("Contact: First@Example.org or second@example.org"))
	assert.Equal(t, "", extractor.ExtractEmail("no email here"))
}

// TestExtractPhone 电话按模式优先级提取，10位号码格式化输出
func TestExtractPhone(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{})

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "带分隔符的10位号码", text: "Call me at 415-555-0199 or 4155550199", want: "(415) 555-0199"},
		{name: "括号区号", text: "(415) 555-0199", want: "(415) 555-0199"},
		{name: "国际格式保留国家码", text: "+1 415 555 0199", want: "+14155550199"},
		{name: "位数不足被拒绝", text: "ext. 555-0199", want: ""},
		{name: "无号码", text: "email only: jane@example.com", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.ExtractPhone(tt.text))
		})
	}
}

// TestExtractSkills 简历全文技能匹配产出去重排序的集合
func TestExtractSkills(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{})

	skills := extractor.ExtractSkills("Go and Python services on AWS with Docker. More Python.")
	assert.Equal(t, []string{"aws", "docker", "go", "python"}, skills)
}

// TestExtractEducation 学位行、机构实体与括号包裹的日期实体拼接为教育文本
func TestExtractEducation(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{entities: []model.Entity{
		{Text: "Stanford University", Label: model.LabelOrg},
		{Text: "2016 - 2020", Label: model.LabelDate},
	}})

	section := "Bachelor of Science in Computer Science\nStanford University\n2016 - 2020"
	got := extractor.ExtractEducation(context.Background(), section, "full text ignored")

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Bachelor of Science in Computer Science", lines[0])
	assert.Equal(t, "Stanford University", lines[1])
	assert.Equal(t, "(2016 - 2020)", lines[2])
}

// TestExtractEducationDegradesWithoutRecognizer 识别器不可用时仅保留学位行
func TestExtractEducationDegradesWithoutRecognizer(t *testing.T) {
	extractor := NewEntityExtractor(&stubProvider{recErr: errors.New("识别器不可用")})

	got := extractor.ExtractEducation(context.Background(), "MBA from somewhere\nAcme Corp", "")
	assert.Equal(t, "MBA from somewhere", got)
}

// TestExtractExperienceBlock 经验关键词起始的块被提取并截断到500字符
func TestExtractExperienceBlock(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{})

	long := "Professional Experience\n" + strings.Repeat("Shipped features. ", 60) + "\n\nEducation follows"
	got := extractor.ExtractExperience(context.Background(), "", long)

	assert.True(t, strings.HasPrefix(got, "Professional Experience"))
	assert.Len(t, []rune(got), 500)
}

// TestExtractExperienceNoKeyword 无经验关键词时返回空串
func TestExtractExperienceNoKeyword(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{})

	assert.Equal(t, "", extractor.ExtractExperience(context.Background(), "", "I build compilers.\nI like Go."))
}

// TestExtractExperiencePrefersSection 有经验章节时在章节内检索
func TestExtractExperiencePrefersSection(t *testing.T) {
	extractor := newTestExtractor(&stubRecognizer{})

	section := "5 years of work experience at Acme"
	got := extractor.ExtractExperience(context.Background(), section, "career summary elsewhere")
	assert.Equal(t, "work experience at Acme", got)
}
