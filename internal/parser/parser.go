package parser

import (
	"context"

	"github.com/rs/zerolog"

	"resume-match-go/internal/model"
	"resume-match-go/internal/types"
)

// Parser 简历解析门面：文档提取 → 章节切分 → 实体提取
// 产出一次性构建的 ParsedResume；提取失败时返回空字段简历与 ExtractionError，
// 下游把空文本当作"未发现信息"，从不崩溃
type Parser struct {
	extractor *DocumentExtractor
	chunker   *SectionChunker
	entities  *EntityExtractor
	logger    zerolog.Logger
}

// ParserOption 解析器配置选项
type ParserOption func(*Parser)

// WithParserLogger 设置日志器，同时下发给内部组件
func WithParserLogger(l zerolog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = l
		p.extractor = NewDocumentExtractor(WithExtractorLogger(l))
	}
}

// NewParser 创建简历解析器
func NewParser(provider model.Provider, options ...ParserOption) *Parser {
	p := &Parser{
		extractor: NewDocumentExtractor(),
		chunker:   NewSectionChunker(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.entities = NewEntityExtractor(provider, WithEntityLogger(p.logger))
	return p
}

// ParseFile 解析磁盘上的简历文件
func (p *Parser) ParseFile(ctx context.Context, path string) (*types.ParsedResume, error) {
	text, err := p.extractor.ExtractFromFile(ctx, path)
	if err != nil {
		p.logger.Error().Err(err).Str("path", path).Msg("简历文本提取失败，返回空简历")
		return emptyResume(), err
	}
	return p.ParseText(ctx, text), nil
}

// ParseBytes 解析已读入内存的简历文档
func (p *Parser) ParseBytes(ctx context.Context, data []byte, format string) (*types.ParsedResume, error) {
	text, err := p.extractor.ExtractFromBytes(ctx, data, format)
	if err != nil {
		p.logger.Error().Err(err).Str("format", format).Msg("简历文本提取失败，返回空简历")
		return emptyResume(), err
	}
	return p.ParseText(ctx, text), nil
}

// ParseText 从已规范化的文本构建结构化简历
func (p *Parser) ParseText(ctx context.Context, text string) *types.ParsedResume {
	sections := p.chunker.Chunk(text)

	resume := &types.ParsedResume{
		Name:       p.entities.ExtractName(ctx, text),
		Email:      p.entities.ExtractEmail(text),
		Phone:      p.entities.ExtractPhone(text),
		Skills:     p.entities.ExtractSkills(text),
		Education:  p.entities.ExtractEducation(ctx, sections[types.SectionEducation], text),
		Experience: p.entities.ExtractExperience(ctx, sections[types.SectionExperience], text),
		Sections:   sections,
	}

	p.logger.Info().
		Str("name", resume.Name).
		Int("skills", len(resume.Skills)).
		Int("sections", len(resume.Sections)).
		Msg("简历解析完成")
	return resume
}

func emptyResume() *types.ParsedResume {
	return &types.ParsedResume{
		Skills:   []string{},
		Sections: map[types.SectionName]string{},
	}
}
