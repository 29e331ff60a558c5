package model

import (
	"sync"

	"github.com/rs/zerolog"
)

// LocalProvider 进程内模型资源提供者
// 嵌入器与识别器各自惰性初始化一次；初始化失败的结果同样被记住，
// 后续调用直接返回同一错误，不做重试
type LocalProvider struct {
	encoderCfg EncoderConfig
	logger     zerolog.Logger

	embedOnce sync.Once
	embedder  TextEmbedder
	embedErr  error

	nerOnce    sync.Once
	recognizer EntityRecognizer
	nerErr     error
}

// LocalProviderOption 提供者配置选项
type LocalProviderOption func(*LocalProvider)

// WithProviderLogger 设置日志器
func WithProviderLogger(l zerolog.Logger) LocalProviderOption {
	return func(p *LocalProvider) {
		p.logger = l
	}
}

// NewLocalProvider 创建本地模型资源提供者
func NewLocalProvider(encoderCfg EncoderConfig, options ...LocalProviderOption) *LocalProvider {
	p := &LocalProvider{
		encoderCfg: encoderCfg,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Embedder 返回句向量编码器，加载失败时返回错误供调用方降级
func (p *LocalProvider) Embedder() (TextEmbedder, error) {
	p.embedOnce.Do(func() {
		encoder, err := NewOnnxEncoder(p.encoderCfg)
		if err != nil {
			p.embedErr = err
			p.logger.Warn().Err(err).Msg("句向量模型加载失败，语义相似度分项将降级为0")
			return
		}
		p.embedder = encoder
		p.logger.Info().Str("model", p.encoderCfg.ModelPath).Msg("句向量模型加载完成")
	})
	return p.embedder, p.embedErr
}

// Recognizer 返回命名实体识别器
func (p *LocalProvider) Recognizer() (EntityRecognizer, error) {
	p.nerOnce.Do(func() {
		p.recognizer = NewProseRecognizer()
	})
	return p.recognizer, p.nerErr
}
