/*
model 包承载管线依赖的重量级NLP资源：句向量模型与命名实体识别器。
资源通过 Provider 接口注入，进程内惰性初始化一次、只读复用；
加载失败不会中断管线，依赖方按字段降级处理。
*/
package model

import "context"

// EntityLabel 命名实体类型
type EntityLabel string

const (
	// LabelPerson 人名实体
	LabelPerson EntityLabel = "PERSON"
	// LabelOrg 组织机构实体（候选院校）
	LabelOrg EntityLabel = "ORG"
	// LabelDate 日期实体
	LabelDate EntityLabel = "DATE"
)

// Entity 命名实体
type Entity struct {
	Text  string
	Label EntityLabel
}

// TextEmbedder 文本向量化接口
type TextEmbedder interface {
	// EmbedStrings 将一组文本转换为稠密向量表示
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}

// EntityRecognizer 命名实体识别与句子切分接口
type EntityRecognizer interface {
	// Entities 识别文本中的命名实体
	Entities(ctx context.Context, text string) ([]Entity, error)
	// Sentences 将文本切分为句子
	Sentences(ctx context.Context, text string) ([]string, error)
}

// Provider 模型资源提供者
// 实现必须满足：惰性、幂等的初始化；初始化失败时每次调用返回同一错误
type Provider interface {
	Embedder() (TextEmbedder, error)
	Recognizer() (EntityRecognizer, error)
}
