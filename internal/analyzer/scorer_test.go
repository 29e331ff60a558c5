package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/model"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"
)

// 测试用模型资源提供者桩
type stubProvider struct {
	embedder model.TextEmbedder
	embErr   error
}

func (p *stubProvider) Embedder() (model.TextEmbedder, error) {
	if p.embErr != nil {
		return nil, p.embErr
	}
	return p.embedder, nil
}

func (p *stubProvider) Recognizer() (model.EntityRecognizer, error) {
	return &stubRecognizer{}, nil
}

// 句子切分退化为标点切分的识别器桩
type stubRecognizer struct{}

func (s *stubRecognizer) Entities(ctx context.Context, text string) ([]model.Entity, error) {
	return nil, nil
}

func (s *stubRecognizer) Sentences(ctx context.Context, text string) ([]string, error) {
	return parser.SplitSentences(text), nil
}

// 所有文本映射到同一单位向量的嵌入器桩（任意两文本余弦相似度为1）
type constantEmbedder struct{}

func (e *constantEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0, 0}
	}
	return out, nil
}

var errModelUnavailable = errors.New("模型不可用")

func unavailableScorer() *Scorer {
	return NewScorer(&stubProvider{embErr: errModelUnavailable})
}

func sampleResume() *types.ParsedResume {
	return &types.ParsedResume{
		Name:       "Jane A. Doe",
		Email:      "jane.doe@example.com",
		Phone:      "(415) 555-0199",
		Skills:     []string{"go", "python"},
		Education:  "Bachelors in Computer Science",
		Experience: "5 years of experience in backend development",
		Sections:   map[types.SectionName]string{},
	}
}

const sampleJobText = "Python and Go required\nminimum 5 years experience\nbachelors in computer science preferred"

// TestScoreDegradationWithoutModel 嵌入模型不可用时语义分项为0，
// 总分等于其余四项的加权和，不做重新归一
func TestScoreDegradationWithoutModel(t *testing.T) {
	breakdown := unavailableScorer().Score(context.Background(), sampleResume(), sampleJobText, nil)

	assert.Equal(t, 0.0, breakdown.ComponentScores[types.ComponentSemanticSimilarity])
	assert.Equal(t, "unavailable", breakdown.SimilarityAnalysis.Method)

	assert.Equal(t, 100.0, breakdown.ComponentScores[types.ComponentSkillsMatch])
	assert.Equal(t, 100.0, breakdown.ComponentScores[types.ComponentRequiredSkills])
	assert.Equal(t, 50.0, breakdown.ComponentScores[types.ComponentExperienceMatch])
	assert.Equal(t, 100.0, breakdown.ComponentScores[types.ComponentEducationMatch])

	// 0.35×1 + 0.25×1 + 0.20×0.5 + 0.10×1 + 0.10×0 = 0.80
	assert.Equal(t, 80.0, breakdown.OverallScore)
}

// TestScoreWithEmbedder 嵌入器可用时语义分项参与加权
func TestScoreWithEmbedder(t *testing.T) {
	scorer := NewScorer(&stubProvider{embedder: &constantEmbedder{}})
	breakdown := scorer.Score(context.Background(), sampleResume(), sampleJobText, nil)

	assert.Equal(t, 100.0, breakdown.ComponentScores[types.ComponentSemanticSimilarity])
	assert.Equal(t, 100.0, breakdown.ComponentScores[types.ComponentExperienceMatch])
	assert.Equal(t, 100.0, breakdown.OverallScore)
	assert.Equal(t, "onnx sentence similarity", breakdown.SimilarityAnalysis.Method)

	// 相似度>0.7的块对进入经验明细
	require.Len(t, breakdown.ExperienceAnalysis, 2)
	semantic := breakdown.ExperienceAnalysis[1]
	assert.Equal(t, "semantic", semantic.Type)
	require.NotEmpty(t, semantic.ChunkMatches)
	assert.InDelta(t, 1.0, semantic.ChunkMatches[0].Similarity, 1e-9)
}

// TestScoreSkillsBoundaries 技能分的边界行为
func TestScoreSkillsBoundaries(t *testing.T) {
	t.Run("简历技能为隐含技能超集时得满分", func(t *testing.T) {
		resume := sampleResume()
		resume.Skills = []string{"aws", "go", "python"}
		breakdown := unavailableScorer().Score(context.Background(), resume, "We use Python and Go.", nil)
		assert.Equal(t, 100.0, breakdown.ComponentScores[types.ComponentSkillsMatch])
	})

	t.Run("交集为空且隐含技能非空时得零分", func(t *testing.T) {
		resume := sampleResume()
		resume.Skills = []string{"java"}
		breakdown := unavailableScorer().Score(context.Background(), resume, "We use Python.", nil)
		assert.Equal(t, 0.0, breakdown.ComponentScores[types.ComponentSkillsMatch])
		assert.Equal(t, []string{"python"}, breakdown.SkillsAnalysis.MissingSkills)
	})

	t.Run("岗位未识别出技能时技能分为零", func(t *testing.T) {
		breakdown := unavailableScorer().Score(context.Background(), sampleResume(), "We need a great colleague.", nil)
		assert.Equal(t, 0.0, breakdown.ComponentScores[types.ComponentSkillsMatch])
	})
}

// TestScoreRequiredSkillsEmptyFullCredit 必备技能为空集时记满分，与简历内容无关
func TestScoreRequiredSkillsEmptyFullCredit(t *testing.T) {
	resume := sampleResume()
	resume.Skills = nil
	breakdown := unavailableScorer().Score(context.Background(), resume, "We use Python.", nil)

	assert.Empty(t, breakdown.SkillsAnalysis.RequiredSkills)
	assert.Equal(t, 100.0, breakdown.ComponentScores[types.ComponentRequiredSkills])
}

// TestScoreOverallRangeForWeightSets 任意总和为1.0的权重组合下总分都在[0,100]内
func TestScoreOverallRangeForWeightSets(t *testing.T) {
	weightSets := []types.Weights{
		types.DefaultWeights(),
		{SkillsMatch: 0.2, RequiredSkills: 0.2, ExperienceMatch: 0.2, EducationMatch: 0.2, OverallSimilarity: 0.2},
		{SkillsMatch: 1},
		{OverallSimilarity: 1},
		{ExperienceMatch: 0.5, EducationMatch: 0.5},
	}

	scorers := []*Scorer{
		unavailableScorer(),
		NewScorer(&stubProvider{embedder: &constantEmbedder{}}),
	}
	for _, scorer := range scorers {
		for _, w := range weightSets {
			breakdown := scorer.Score(context.Background(), sampleResume(), sampleJobText, &w)
			assert.GreaterOrEqual(t, breakdown.OverallScore, 0.0)
			assert.LessOrEqual(t, breakdown.OverallScore, 100.0)
			for component, score := range breakdown.ComponentScores {
				assert.GreaterOrEqual(t, score, 0.0, component)
				assert.LessOrEqual(t, score, 100.0, component)
			}
		}
	}
}

// TestScoreIdempotent 相同输入、模型可用性不变时两次评分结果完全一致
func TestScoreIdempotent(t *testing.T) {
	scorer := NewScorer(&stubProvider{embedder: &constantEmbedder{}},
		WithClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }))

	first := scorer.Score(context.Background(), sampleResume(), sampleJobText, nil)
	second := scorer.Score(context.Background(), sampleResume(), sampleJobText, nil)
	assert.Equal(t, first, second)
}

// TestScoreYearsAccumulation 显式年限取最大值，年份区间跨度逐段累加
func TestScoreYearsAccumulation(t *testing.T) {
	resume := sampleResume()
	resume.Experience = "4 years of experience\n2018 - 2020 Acme Corp\n2021 - 2023 Beta LLC"
	breakdown := unavailableScorer().Score(context.Background(), resume, "minimum 5 years required", nil)

	require.Len(t, breakdown.ExperienceAnalysis, 1)
	detail := breakdown.ExperienceAnalysis[0]
	assert.Equal(t, "years", detail.Type)
	assert.Equal(t, 5, detail.RequiredYears)
	// 先取显式提及的最大值4，再累加区间跨度2+2
	assert.Equal(t, 8, detail.FoundYears)
	assert.Equal(t, 1.0, detail.Score)
	assert.Equal(t, 50.0, breakdown.ComponentScores[types.ComponentExperienceMatch])
}

// TestScoreYearsPresentRange "present" 解析为当前日历年
func TestScoreYearsPresentRange(t *testing.T) {
	scorer := NewScorer(&stubProvider{embErr: errModelUnavailable},
		WithClock(func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }))

	resume := sampleResume()
	resume.Experience = "Acme Corp 2024 - present"
	breakdown := scorer.Score(context.Background(), resume, "min 4 years of work", nil)

	require.Len(t, breakdown.ExperienceAnalysis, 1)
	assert.Equal(t, 2, breakdown.ExperienceAnalysis[0].FoundYears)
	assert.Equal(t, 4, breakdown.ExperienceAnalysis[0].RequiredYears)
	assert.Equal(t, 25.0, breakdown.ComponentScores[types.ComponentExperienceMatch])
}

// TestScoreEducation 学历层级与专业领域的组合评分
func TestScoreEducation(t *testing.T) {
	t.Run("学历低于要求时按层级比例给分", func(t *testing.T) {
		resume := sampleResume()
		resume.Education = "Bachelors in Physics"
		breakdown := unavailableScorer().Score(context.Background(), resume, "masters in engineering required", nil)

		// 层级 3/4=0.75×0.6 + 领域 0×0.4 = 0.45
		assert.Equal(t, 45.0, breakdown.ComponentScores[types.ComponentEducationMatch])
		require.Len(t, breakdown.EducationAnalysis, 2)
		assert.Equal(t, "masters", breakdown.EducationAnalysis[0].RequiredLevel)
		assert.Equal(t, "bachelors", breakdown.EducationAnalysis[0].FoundLevel)
	})

	t.Run("岗位无目标领域但简历含已知领域时给固定部分分", func(t *testing.T) {
		resume := sampleResume()
		resume.Education = "BS in Mathematics"
		breakdown := unavailableScorer().Score(context.Background(), resume, "an exciting opening", nil)

		// 层级项跳过，领域 0.5×0.4 = 0.2
		assert.Equal(t, 20.0, breakdown.ComponentScores[types.ComponentEducationMatch])
	})

	t.Run("教育文本为空时教育分为零", func(t *testing.T) {
		resume := sampleResume()
		resume.Education = ""
		breakdown := unavailableScorer().Score(context.Background(), resume, "masters required", nil)
		assert.Equal(t, 0.0, breakdown.ComponentScores[types.ComponentEducationMatch])
		assert.Empty(t, breakdown.EducationAnalysis)
	})
}

// TestScoreSkillContexts 命中技能记录出现的章节与句子，无命中不产生条目
func TestScoreSkillContexts(t *testing.T) {
	resume := sampleResume()
	resume.Skills = []string{"go", "python"}
	resume.Experience = "Go services in production. Built APIs."
	resume.Education = ""
	resume.Sections = map[types.SectionName]string{
		types.SectionProjects: "Wrote a compiler in Go.",
	}
	breakdown := unavailableScorer().Score(context.Background(), resume, "Go and Python developers wanted", nil)

	contexts := breakdown.SkillsAnalysis.SkillContexts
	require.Contains(t, contexts, "go")
	require.Len(t, contexts["go"], 2)
	assert.Equal(t, types.SectionExperience, contexts["go"][0].Section)
	assert.Equal(t, "Go services in production.", contexts["go"][0].Sentence)
	assert.Equal(t, types.SectionProjects, contexts["go"][1].Section)

	// python 无任何出现位置，不应有条目
	assert.NotContains(t, contexts, "python")
}

// TestScoreNilInputs 非法输入不抛错，返回全零结果
func TestScoreNilInputs(t *testing.T) {
	breakdown := unavailableScorer().ScoreProfile(context.Background(), nil, nil, nil)

	require.NotNil(t, breakdown)
	assert.Equal(t, 0.0, breakdown.OverallScore)
	assert.Empty(t, breakdown.ComponentScores)
	assert.Equal(t, "unavailable", breakdown.SimilarityAnalysis.Method)
}
