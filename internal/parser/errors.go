package parser

import (
	"errors"
	"fmt"
)

// 基础错误类型
var (
	ErrUnsupportedFormat  = errors.New("不支持的文档格式")
	ErrReadDocumentFailed = errors.New("读取文档失败")
	ErrExtractTextFailed  = errors.New("提取文档文本失败")
)

// ExtractionError 文本提取失败的详细错误
// 提取失败不致命：下游把空文本当作"未发现信息"处理
type ExtractionError struct {
	Source  string // 文件路径或来源描述
	Format  string // 声明的格式: pdf / docx / txt
	BaseErr error
	Detail  string
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (格式:%s, 来源:%s): %s", e.BaseErr, e.Format, e.Source, e.Detail)
	}
	return fmt.Sprintf("%s (格式:%s, 来源:%s)", e.BaseErr, e.Format, e.Source)
}

func (e *ExtractionError) Unwrap() error {
	return e.BaseErr
}

// Is 支持 errors.Is 比较基础错误
func (e *ExtractionError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func newUnsupportedFormatError(source, format string) error {
	return &ExtractionError{Source: source, Format: format, BaseErr: ErrUnsupportedFormat}
}

func newReadError(source, format, detail string) error {
	return &ExtractionError{Source: source, Format: format, BaseErr: ErrReadDocumentFailed, Detail: detail}
}

func newExtractError(source, format, detail string) error {
	return &ExtractionError{Source: source, Format: format, BaseErr: ErrExtractTextFailed, Detail: detail}
}
