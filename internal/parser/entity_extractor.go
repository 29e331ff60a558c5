package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"resume-match-go/internal/model"
	"resume-match-go/internal/taxonomy"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// 电话模式按优先级排列：国际格式、北美格式、裸10位、无分隔国际、带分隔10位
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\d{10}`),
		regexp.MustCompile(`\+\d{10,}`),
		regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
	}
	nonPhoneCharRe = regexp.MustCompile(`[^\d+]`)
	digitRe        = regexp.MustCompile(`\d`)

	experienceBlockRe = regexp.MustCompile(
		`(?is)(?:` + strings.Join(taxonomy.ExperienceKeywords, "|") + `).*?(?:\n\n|\z)`)
)

const (
	nameScanLines         = 5 // 姓名识别只看文档起始行
	maxNameLength         = 50
	maxNameFallbackTokens = 5
	experienceBlockLimit  = 500 // 经验块截断长度（字符）
	experienceSentenceCap = 5   // 兜底句子数量上限
)

// EntityExtractor 从文本与章节中恢复姓名、联系方式、技能、教育与经验信息
// 每个字段独立提取、独立降级：识别器不可用时仅影响依赖它的字段
type EntityExtractor struct {
	recognizer func() (model.EntityRecognizer, error)
	logger     zerolog.Logger
}

// EntityExtractorOption 实体提取器配置选项
type EntityExtractorOption func(*EntityExtractor)

// WithEntityLogger 设置日志器
func WithEntityLogger(l zerolog.Logger) EntityExtractorOption {
	return func(e *EntityExtractor) {
		e.logger = l
	}
}

// NewEntityExtractor 创建实体提取器
func NewEntityExtractor(provider model.Provider, options ...EntityExtractorOption) *EntityExtractor {
	e := &EntityExtractor{
		recognizer: provider.Recognizer,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// ExtractName 提取候选人姓名
// 先对文档前几行做人名实体识别并校验（≥2个词、无数字、无@、长度<50）；
// 识别不到时回退为第一非空行（≤5个词、无数字、无@）
func (e *EntityExtractor) ExtractName(ctx context.Context, text string) string {
	lines := strings.Split(text, "\n")
	head := lines
	if len(head) > nameScanLines {
		head = head[:nameScanLines]
	}
	firstPara := strings.Join(head, " ")

	if recognizer, err := e.recognizer(); err == nil {
		entities, nerErr := recognizer.Entities(ctx, firstPara)
		if nerErr != nil {
			e.logger.Warn().Err(nerErr).Msg("姓名实体识别失败，使用首行回退")
		} else {
			for _, ent := range entities {
				if ent.Label != model.LabelPerson {
					continue
				}
				name := strings.TrimSpace(ent.Text)
				if len(strings.Fields(name)) >= 2 &&
					!containsDigit(name) &&
					!strings.Contains(name, "@") &&
					len(name) < maxNameLength {
					return name
				}
			}
		}
	} else {
		e.logger.Warn().Err(err).Msg("实体识别器不可用，使用首行回退")
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(strings.Fields(line)) <= maxNameFallbackTokens &&
			!containsDigit(line) &&
			!strings.Contains(line, "@") {
			return line
		}
		break
	}
	return ""
}

// ExtractEmail 提取首个合法邮箱地址并转为小写
func (e *EntityExtractor) ExtractEmail(text string) string {
	for _, candidate := range emailRe.FindAllString(text, -1) {
		if strings.Count(candidate, "@") != 1 || len(candidate) <= 5 {
			continue
		}
		domain := candidate[strings.Index(candidate, "@")+1:]
		if !strings.Contains(domain, ".") || strings.ContainsAny(candidate, " \t\n") {
			continue
		}
		return strings.ToLower(candidate)
	}
	return ""
}

// ExtractPhone 按模式优先级提取电话号码
// 取第一个产生合法候选（≥10位数字）的模式的首个匹配；
// 10位号码格式化为 (XXX) XXX-XXXX，其余返回清洗后的数字串
func (e *EntityExtractor) ExtractPhone(text string) string {
	seen := make(map[string]bool)
	for _, pattern := range phonePatterns {
		for _, raw := range pattern.FindAllString(text, -1) {
			cleaned := nonPhoneCharRe.ReplaceAllString(raw, "")
			if len(digitRe.FindAllString(cleaned, -1)) < 10 || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			if len(cleaned) == 10 {
				return fmt.Sprintf("(%s) %s-%s", cleaned[:3], cleaned[3:6], cleaned[6:])
			}
			return cleaned
		}
	}
	return ""
}

// ExtractSkills 对简历全文做技能目录匹配
func (e *EntityExtractor) ExtractSkills(text string) []string {
	return taxonomy.MatchSkills(text)
}

// ExtractEducation 提取教育信息
// 在教育章节（无章节时用全文）内收集：含学位关键词的行、
// 机构类实体（候选院校）、日期类实体（括号包裹），换行拼接
func (e *EntityExtractor) ExtractEducation(ctx context.Context, sectionText, fullText string) string {
	text := sectionText
	if text == "" {
		text = fullText
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var parts []string

	for _, line := range strings.Split(text, "\n") {
		padded := " " + strings.ToLower(line) + " "
		for _, degree := range taxonomy.DegreeKeywords {
			if strings.Contains(padded, " "+degree+" ") {
				parts = append(parts, strings.TrimSpace(line))
				break
			}
		}
	}

	if recognizer, err := e.recognizer(); err == nil {
		entities, nerErr := recognizer.Entities(ctx, text)
		if nerErr != nil {
			e.logger.Warn().Err(nerErr).Msg("教育信息实体识别失败，仅保留学位行")
		} else {
			for _, ent := range entities {
				if ent.Label == model.LabelOrg {
					parts = append(parts, ent.Text)
				}
			}
			for _, ent := range entities {
				if ent.Label == model.LabelDate {
					parts = append(parts, "("+ent.Text+")")
				}
			}
		}
	}

	return strings.Join(parts, "\n")
}

// ExtractExperience 提取工作经验文本
// 优先取以经验关键词开头、到空行或文本结尾的块（截断到500字符）；
// 找不到时兜底收集最多5个含经验关键词的句子
func (e *EntityExtractor) ExtractExperience(ctx context.Context, sectionText, fullText string) string {
	text := sectionText
	if text == "" {
		text = fullText
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if block := experienceBlockRe.FindString(text); block != "" {
		return truncateRunes(strings.TrimSpace(block), experienceBlockLimit)
	}

	sentences := e.sentences(ctx, text)
	var collected []string
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, keyword := range taxonomy.ExperienceKeywords {
			if strings.Contains(lower, keyword) {
				collected = append(collected, sentence)
				break
			}
		}
		if len(collected) >= experienceSentenceCap {
			break
		}
	}
	return strings.Join(collected, " ")
}

// sentences 优先用识别器做句子切分，不可用时退化为标点切分
func (e *EntityExtractor) sentences(ctx context.Context, text string) []string {
	if recognizer, err := e.recognizer(); err == nil {
		if sentences, splitErr := recognizer.Sentences(ctx, text); splitErr == nil {
			return sentences
		}
	}
	return SplitSentences(text)
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
