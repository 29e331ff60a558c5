package parser

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

var (
	lineSpaceRe = regexp.MustCompile(`[ \t]+`)
	xmlTagRe    = regexp.MustCompile(`<[^>]*>`)
)

// DocumentExtractor 把PDF/DOCX/TXT文档转换为单个规范化文本字符串
// 保留段落与换行结构，按行折叠空白
type DocumentExtractor struct {
	logger zerolog.Logger
}

// DocumentExtractorOption 提取器配置选项
type DocumentExtractorOption func(*DocumentExtractor)

// WithExtractorLogger 设置日志器
func WithExtractorLogger(l zerolog.Logger) DocumentExtractorOption {
	return func(e *DocumentExtractor) {
		e.logger = l
	}
}

// NewDocumentExtractor 创建文档提取器
func NewDocumentExtractor(options ...DocumentExtractorOption) *DocumentExtractor {
	e := &DocumentExtractor{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// ExtractFromFile 按文件扩展名提取并规范化文本
func (e *DocumentExtractor) ExtractFromFile(ctx context.Context, path string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", newReadError(path, format, err.Error())
	}
	return e.extract(ctx, path, data, format)
}

// ExtractFromBytes 按声明的格式提取并规范化文本
func (e *DocumentExtractor) ExtractFromBytes(ctx context.Context, data []byte, format string) (string, error) {
	return e.extract(ctx, "(bytes)", data, strings.ToLower(format))
}

func (e *DocumentExtractor) extract(ctx context.Context, source string, data []byte, format string) (string, error) {
	var (
		raw string
		err error
	)

	switch format {
	case "pdf":
		raw, err = extractPDF(data)
	case "docx":
		raw, err = extractDOCX(data)
	case "txt":
		raw = string(data)
	default:
		return "", newUnsupportedFormatError(source, format)
	}
	if err != nil {
		e.logger.Error().Err(err).Str("source", source).Str("format", format).Msg("文档文本提取失败")
		return "", newExtractError(source, format, err.Error())
	}

	text := NormalizeText(raw)
	e.logger.Debug().Str("source", source).Int("chars", len(text)).Msg("文档文本提取完成")
	return text, nil
}

// extractPDF 提取PDF纯文本
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	content, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := buf.ReadFrom(content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// extractDOCX 提取DOCX文本，剥离文档XML标记
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	// 段落与换行标记转为换行符，其余标记移除
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")
	return xmlTagRe.ReplaceAllString(content, ""), nil
}

// NormalizeText 规范化文本：NFKC归一、统一换行、按行折叠空白、压缩空行
func NormalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(lineSpaceRe.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")

	// 连续空行压缩为单个段落分隔
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}
