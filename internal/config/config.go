package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// ModelConfig 本地模型资源配置
// 模型文件缺失时嵌入器不可用，语义相似度分项降级为0，管线不报错
type ModelConfig struct {
	OrtDLL        string `yaml:"ort_dll"`        // onnxruntime 动态库路径，留空使用系统默认
	ModelPath     string `yaml:"model_path"`     // 句向量模型(onnx)路径
	TokenizerPath string `yaml:"tokenizer_path"` // tokenizer.json 路径
	MaxSeqLen     int    `yaml:"max_seq_len"`    // 最大输入token数
}

// ScoringConfig 评分配置
type ScoringConfig struct {
	Weights types.Weights `yaml:"weights"`
}

// Config 应用配置
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logger  logger.Config `yaml:"logger"`
}

// DefaultConfig 返回内置默认配置
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			ModelPath:     "models/paraphrase-minilm-l6-v2/model.onnx",
			TokenizerPath: "models/paraphrase-minilm-l6-v2/tokenizer.json",
			MaxSeqLen:     256,
		},
		Scoring: ScoringConfig{
			Weights: types.DefaultWeights(),
		},
		Logger: logger.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig 从YAML文件加载配置，缺省字段使用默认值
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置合法性
func (c *Config) Validate() error {
	if c.Model.MaxSeqLen <= 0 {
		return fmt.Errorf("model.max_seq_len 必须为正数，当前为 %d", c.Model.MaxSeqLen)
	}
	sum := c.Scoring.Weights.Sum()
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring.weights 总和必须为1.0，当前为 %.4f", sum)
	}
	return nil
}
