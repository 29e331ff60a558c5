package model

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEncoderConfig(t *testing.T) EncoderConfig {
	t.Helper()
	if os.Getenv("SKIP_MODEL_TESTS") == "true" {
		t.Skip("SKIP_MODEL_TESTS=true，跳过真实模型测试")
	}

	cfg := EncoderConfig{
		OrtDLL:        os.Getenv("TEST_ORT_DLL"),
		ModelPath:     os.Getenv("TEST_MODEL_PATH"),
		TokenizerPath: os.Getenv("TEST_TOKENIZER_PATH"),
		MaxSeqLen:     256,
	}
	if cfg.ModelPath == "" {
		cfg.ModelPath = "../../models/paraphrase-minilm-l6-v2/model.onnx"
	}
	if cfg.TokenizerPath == "" {
		cfg.TokenizerPath = "../../models/paraphrase-minilm-l6-v2/tokenizer.json"
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		t.Skipf("模型文件不存在(%s)，跳过真实模型测试", cfg.ModelPath)
	}
	return cfg
}

// TestOnnxEncoderEmbedStrings 真实模型端到端编码
// 输出向量已L2归一化，语义相近的文本对应更高的点积
func TestOnnxEncoderEmbedStrings(t *testing.T) {
	encoder, err := NewOnnxEncoder(testEncoderConfig(t))
	require.NoError(t, err)
	defer encoder.Close()

	vecs, err := encoder.EmbedStrings(context.Background(), []string{
		"five years of Go backend development experience",
		"senior Go engineer building backend services",
		"chocolate cake baking recipe",
	})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	for _, vec := range vecs {
		require.NotEmpty(t, vec)
		var norm float64
		for _, v := range vec {
			norm += v * v
		}
		assert.InDelta(t, 1.0, norm, 1e-3)
	}

	// 归一化向量的点积即余弦相似度
	dot := func(a, b []float64) float64 {
		var d float64
		for i := range a {
			d += a[i] * b[i]
		}
		return d
	}
	assert.Greater(t, dot(vecs[0], vecs[1]), dot(vecs[0], vecs[2]))
}

// TestOnnxEncoderCancelledContext 已取消的上下文中断批量编码
func TestOnnxEncoderCancelledContext(t *testing.T) {
	encoder, err := NewOnnxEncoder(testEncoderConfig(t))
	require.NoError(t, err)
	defer encoder.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = encoder.EmbedStrings(ctx, []string{"text"})
	assert.ErrorIs(t, err, context.Canceled)
}
