package parser

import (
	"regexp"
	"strings"

	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"
)

// SectionChunker 基于标题模式把简历文本切分为命名章节
type SectionChunker struct {
	patterns []compiledHeader
}

type compiledHeader struct {
	name types.SectionName
	re   *regexp.Regexp
}

// NewSectionChunker 创建章节切分器，编译目录中的标题模式
// 模式顺序即优先级：同一行命中多个模式时取最先声明者
func NewSectionChunker() *SectionChunker {
	patterns := make([]compiledHeader, 0, len(taxonomy.SectionHeaderPatterns))
	for _, hp := range taxonomy.SectionHeaderPatterns {
		patterns = append(patterns, compiledHeader{
			name: hp.Name,
			re:   regexp.MustCompile(hp.Pattern),
		})
	}
	return &SectionChunker{patterns: patterns}
}

// Chunk 扫描文本行并切分章节
// 命中标题模式的行开启新章节，后续行累积到该章节直到下一个标题或文本结尾；
// 第一个标题之前的行不进入任何章节（仍保留在全文中供姓名、联系方式提取）。
// 无任何标题的简历返回空章节映射，不报错
func (c *SectionChunker) Chunk(text string) map[types.SectionName]string {
	sections := make(map[types.SectionName]string)

	var (
		current   types.SectionName
		inSection bool
		content   []string
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matched, ok := c.matchHeader(line)
		if ok {
			if inSection {
				sections[current] = strings.Join(content, "\n")
			}
			current = matched
			inSection = true
			content = nil
			continue
		}
		if inSection {
			content = append(content, line)
		}
	}

	if inSection && len(content) > 0 {
		sections[current] = strings.Join(content, "\n")
	}
	return sections
}

func (c *SectionChunker) matchHeader(line string) (types.SectionName, bool) {
	for _, p := range c.patterns {
		if p.re.MatchString(line) {
			return p.name, true
		}
	}
	return "", false
}
