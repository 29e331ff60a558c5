package model

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// EncoderConfig ONNX句向量编码器配置
type EncoderConfig struct {
	OrtDLL        string // onnxruntime 动态库路径，留空使用默认
	ModelPath     string // 模型文件(.onnx)路径
	TokenizerPath string // tokenizer.json 路径
	MaxSeqLen     int    // 最大序列长度
}

// OnnxEncoder 基于 onnxruntime 的本地句向量编码器
// 输出为均值池化后做L2归一化的句向量
type OnnxEncoder struct {
	cfg     EncoderConfig
	tk      *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession

	mu sync.Mutex // onnxruntime 会话的串行化保护
}

// 进程级共享的 onnxruntime 环境
var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initOrtEnvironment(dllPath string) error {
	ortInitOnce.Do(func() {
		if dllPath != "" {
			ort.SetSharedLibraryPath(dllPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// NewOnnxEncoder 加载tokenizer与模型并建立推理会话
// 任一资源缺失即返回错误，调用方据此降级语义分项
func NewOnnxEncoder(cfg EncoderConfig) (*OnnxEncoder, error) {
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = 256
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("句向量模型不可用: %w", err)
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("加载tokenizer失败: %w", err)
	}
	tk.WithTruncation(&tokenizer.TruncationParams{
		MaxLength: cfg.MaxSeqLen,
		Strategy:  tokenizer.LongestFirst,
	})

	if err := initOrtEnvironment(cfg.OrtDLL); err != nil {
		return nil, fmt.Errorf("初始化onnxruntime失败: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("创建推理会话失败: %w", err)
	}

	return &OnnxEncoder{cfg: cfg, tk: tk, session: session}, nil
}

// EmbedStrings 实现 TextEmbedder 接口，逐条编码
func (e *OnnxEncoder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		vec, err := e.encode(text)
		if err != nil {
			return nil, fmt.Errorf("编码第%d条文本失败: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

// encode 编码单条文本：tokenize → 推理 → 掩码均值池化 → L2归一化
func (e *OnnxEncoder) encode(text string) ([]float64, error) {
	encoding, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize失败: %w", err)
	}

	seqLen := len(encoding.Ids)
	if seqLen == 0 {
		return nil, fmt.Errorf("tokenize结果为空")
	}

	ids := make([]int64, seqLen)
	mask := make([]int64, seqLen)
	typeIds := make([]int64, seqLen)
	for i := 0; i < seqLen; i++ {
		ids[i] = int64(encoding.Ids[i])
		mask[i] = int64(encoding.AttentionMask[i])
		typeIds[i] = int64(encoding.TypeIds[i])
	}

	shape := ort.NewShape(1, int64(seqLen))
	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, err
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, err
	}
	defer maskTensor.Destroy()
	typeTensor, err := ort.NewTensor(shape, typeIds)
	if err != nil {
		return nil, err
	}
	defer typeTensor.Destroy()

	e.mu.Lock()
	defer e.mu.Unlock()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outputs); err != nil {
		return nil, fmt.Errorf("推理失败: %w", err)
	}
	outTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("推理输出类型不符合预期")
	}
	defer outTensor.Destroy()

	hidden := outTensor.GetData()
	dims := outTensor.GetShape()
	if len(dims) != 3 {
		return nil, fmt.Errorf("推理输出形状不符合预期: %v", dims)
	}
	hiddenSize := int(dims[2])

	return meanPool(hidden, mask, seqLen, hiddenSize), nil
}

// meanPool 对 last_hidden_state 做注意力掩码加权均值池化并L2归一化
func meanPool(hidden []float32, mask []int64, seqLen, hiddenSize int) []float64 {
	vec := make([]float64, hiddenSize)
	var count float64
	for t := 0; t < seqLen; t++ {
		if mask[t] == 0 {
			continue
		}
		count++
		base := t * hiddenSize
		for d := 0; d < hiddenSize; d++ {
			vec[d] += float64(hidden[base+d])
		}
	}
	if count == 0 {
		return vec
	}

	var norm float64
	for d := range vec {
		vec[d] /= count
		norm += vec[d] * vec[d]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for d := range vec {
			vec[d] /= norm
		}
	}
	return vec
}

// Close 释放推理会话资源
func (e *OnnxEncoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		err := e.session.Destroy()
		e.session = nil
		return err
	}
	return nil
}
