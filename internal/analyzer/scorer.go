package analyzer

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"resume-match-go/internal/model"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"
)

const similarityMethod = "onnx sentence similarity"

// 经验年限模式
var (
	// 岗位描述中的年限要求
	jdYearsRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)[+\s]*(?:years?|yrs?)(?:\s+of)?\s+(?:experience|exp)`),
		regexp.MustCompile(`experience:\s*(\d+)[+\s]*(?:years?|yrs?)`),
		regexp.MustCompile(`(?:minimum|min)\s+(\d+)\s+(?:years?|yrs?)`),
	}
	// 简历经验文本中的显式年限与年份区间
	explicitYearsRe = regexp.MustCompile(`(\d+)[+\s]*(?:years?|yrs?)(?:\s+of)?\s+(?:experience|exp)`)
	yearRangeRe     = regexp.MustCompile(`(?:19|20)\d{2}\s*-\s*(?:present|current|now|(?:19|20)\d{2})`)
	yearNumRe       = regexp.MustCompile(`(?:19|20)\d{2}`)
)

// Scorer 简历-岗位评分引擎
// Score 对相同输入是纯函数：除只读的模型资源外不持有可变状态，
// 多份简历可在调用方的并行单元中独立评分
type Scorer struct {
	provider model.Provider
	logger   zerolog.Logger
	now      func() time.Time // 解析 "present" 年份时使用，测试中可固定
}

// ScorerOption 评分引擎配置选项
type ScorerOption func(*Scorer)

// WithScorerLogger 设置日志器
func WithScorerLogger(l zerolog.Logger) ScorerOption {
	return func(s *Scorer) {
		s.logger = l
	}
}

// WithClock 设置时钟，便于测试固定当前年份
func WithClock(now func() time.Time) ScorerOption {
	return func(s *Scorer) {
		s.now = now
	}
}

// NewScorer 创建评分引擎
func NewScorer(provider model.Provider, options ...ScorerOption) *Scorer {
	s := &Scorer{
		provider: provider,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Score 对简历与岗位描述文本评分
// 内部先派生岗位画像再计算，从不向调用方抛错
func (s *Scorer) Score(ctx context.Context, resume *types.ParsedResume, jobText string, weights *types.Weights) *types.ScoreBreakdown {
	return s.ScoreProfile(ctx, resume, AnalyzeJob(jobText), weights)
}

// ScoreProfile 计算五个分项与加权总分
// 权重要求总和为1.0（weights为nil时使用默认值）；
// 任何意外失败在此处兜底，返回全零结果而不是错误
func (s *Scorer) ScoreProfile(ctx context.Context, resume *types.ParsedResume, job *types.JobProfile, weights *types.Weights) (breakdown *types.ScoreBreakdown) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("评分过程出现意外失败，返回零分结果")
			breakdown = emptyBreakdown()
		}
	}()

	if resume == nil || job == nil {
		s.logger.Warn().Msg("评分输入为空，返回零分结果")
		return emptyBreakdown()
	}

	w := types.DefaultWeights()
	if weights != nil {
		w = *weights
	}
	if sum := w.Sum(); sum < 0.999 || sum > 1.001 {
		s.logger.Warn().Float64("sum", sum).Msg("权重总和不为1.0，总分可能超出预期区间")
	}

	skills := s.analyzeSkills(ctx, resume, job)
	experienceScore, experienceDetails := s.analyzeExperience(ctx, resume, job)
	educationScore, educationDetails := s.analyzeEducation(resume, job)
	similarity := s.analyzeSimilarity(ctx, resume, job)

	overall := (skills.score*w.SkillsMatch +
		skills.requiredScore*w.RequiredSkills +
		experienceScore*w.ExperienceMatch +
		educationScore*w.EducationMatch +
		similarity.Score*w.OverallSimilarity) * 100

	breakdown = &types.ScoreBreakdown{
		OverallScore: round2(overall),
		ComponentScores: map[string]float64{
			types.ComponentSkillsMatch:        round2(skills.score * 100),
			types.ComponentRequiredSkills:     round2(skills.requiredScore * 100),
			types.ComponentExperienceMatch:    round2(experienceScore * 100),
			types.ComponentEducationMatch:     round2(educationScore * 100),
			types.ComponentSemanticSimilarity: round2(similarity.Score * 100),
		},
		SkillsAnalysis:     skills.analysis,
		ExperienceAnalysis: experienceDetails,
		EducationAnalysis:  educationDetails,
		SimilarityAnalysis: similarity,
	}

	s.logger.Info().Float64("overall_score", breakdown.OverallScore).Msg("简历评分完成")
	return breakdown
}

type skillsResult struct {
	score         float64
	requiredScore float64
	analysis      types.SkillsAnalysis
}

// analyzeSkills 技能匹配分析
// 技能分 = |简历∩隐含| / |隐含|（隐含为空时为0）；
// 必备分 = 已覆盖必备技能占比（必备为空时记满分1.0）
func (s *Scorer) analyzeSkills(ctx context.Context, resume *types.ParsedResume, job *types.JobProfile) skillsResult {
	resumeSet := toSet(resume.Skills)

	var matched, missing []string
	for _, skill := range job.ImpliedSkills {
		if resumeSet[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	var missingRequired []string
	for _, skill := range job.RequiredSkills {
		if !resumeSet[skill] {
			missingRequired = append(missingRequired, skill)
		}
	}

	score := 0.0
	if len(job.ImpliedSkills) > 0 {
		score = clamp01(float64(len(matched)) / float64(len(job.ImpliedSkills)))
	}
	requiredScore := 1.0
	if len(job.RequiredSkills) > 0 {
		covered := len(job.RequiredSkills) - len(missingRequired)
		requiredScore = clamp01(float64(covered) / float64(len(job.RequiredSkills)))
	}

	return skillsResult{
		score:         score,
		requiredScore: requiredScore,
		analysis: types.SkillsAnalysis{
			MatchedSkills:   matched,
			MissingSkills:   missing,
			MissingRequired: missingRequired,
			RequiredSkills:  job.RequiredSkills,
			SkillContexts:   s.findSkillContexts(ctx, resume, matched),
		},
	}
}

// findSkillContexts 为每个命中技能收集出现位置（章节+句子）
// 依次扫描经验文本、教育文本和其余命名章节；无命中的技能不产生条目
func (s *Scorer) findSkillContexts(ctx context.Context, resume *types.ParsedResume, matched []string) map[string][]types.SkillContext {
	type sectionText struct {
		name      types.SectionName
		sentences []string
	}

	var sources []sectionText
	if resume.Experience != "" {
		sources = append(sources, sectionText{types.SectionExperience, s.sentences(ctx, resume.Experience)})
	}
	if resume.Education != "" {
		sources = append(sources, sectionText{types.SectionEducation, s.sentences(ctx, resume.Education)})
	}
	// 其余章节按名称排序，保证相同输入产出相同结果
	var otherNames []string
	for name := range resume.Sections {
		if name != types.SectionExperience && name != types.SectionEducation {
			otherNames = append(otherNames, string(name))
		}
	}
	sort.Strings(otherNames)
	for _, name := range otherNames {
		sources = append(sources, sectionText{types.SectionName(name), s.sentences(ctx, resume.Sections[types.SectionName(name)])})
	}

	contexts := make(map[string][]types.SkillContext)
	for _, skill := range matched {
		lowerSkill := strings.ToLower(skill)
		for _, src := range sources {
			for _, sentence := range src.sentences {
				if strings.Contains(strings.ToLower(sentence), lowerSkill) {
					contexts[skill] = append(contexts[skill], types.SkillContext{
						Section:  src.name,
						Sentence: sentence,
					})
				}
			}
		}
	}
	return contexts
}

// analyzeExperience 经验匹配分析
// 总分 = 0.5×年限分 + 0.5×语义分；无法计算的项直接跳过、不重新归一。
// 年限累计规则：显式 "N years" 提及按最大值比较覆盖，
// 年份区间跨度逐段累加——这一不对称是刻意保留的既有行为
func (s *Scorer) analyzeExperience(ctx context.Context, resume *types.ParsedResume, job *types.JobProfile) (float64, []types.MatchDetail) {
	if resume.Experience == "" || job.RawText == "" {
		return 0, nil
	}

	var (
		total   float64
		details []types.MatchDetail
	)

	requiredYears := 0
	jdLower := strings.ToLower(job.RawText)
	for _, re := range jdYearsRes {
		for _, m := range re.FindAllStringSubmatch(jdLower, -1) {
			if years, err := strconv.Atoi(m[1]); err == nil && years > requiredYears {
				requiredYears = years
			}
		}
	}

	expLower := strings.ToLower(resume.Experience)
	foundYears := 0
	for _, m := range explicitYearsRe.FindAllStringSubmatch(expLower, -1) {
		if years, err := strconv.Atoi(m[1]); err == nil && years > foundYears {
			foundYears = years
		}
	}
	for _, m := range yearRangeRe.FindAllString(expLower, -1) {
		parts := strings.SplitN(m, "-", 2)
		startYear, err := strconv.Atoi(yearNumRe.FindString(parts[0]))
		if err != nil {
			continue
		}
		endYear := s.now().Year()
		if year := yearNumRe.FindString(parts[1]); year != "" {
			endYear, _ = strconv.Atoi(year)
		}
		foundYears += endYear - startYear
	}

	if requiredYears > 0 {
		yearsScore := clamp01(float64(foundYears) / float64(requiredYears))
		details = append(details, types.MatchDetail{
			Type:          "years",
			Score:         yearsScore,
			RequiredYears: requiredYears,
			FoundYears:    foundYears,
		})
		total += yearsScore * 0.5
	}

	if semanticScore, detail, ok := s.experienceSemantic(ctx, resume.Experience, job.RawText); ok {
		details = append(details, detail)
		total += semanticScore * 0.5
	}

	return total, details
}

// experienceSemantic 经验描述与岗位描述的逐块语义相似度
// 对每个简历经验块取与任一岗位块的最大余弦相似度，语义分为全部块的均值；
// 仅相似度>0.7的块对进入明细（可解释性），均值本身不受阈值影响
func (s *Scorer) experienceSemantic(ctx context.Context, experience, jobText string) (float64, types.MatchDetail, bool) {
	embedder, err := s.provider.Embedder()
	if err != nil {
		return 0, types.MatchDetail{}, false
	}

	resumeChunks := nonEmptyLines(experience)
	jobChunks := nonEmptyLines(jobText)
	if len(resumeChunks) == 0 || len(jobChunks) == 0 {
		return 0, types.MatchDetail{}, false
	}

	resumeVecs, err := embedder.EmbedStrings(ctx, resumeChunks)
	if err != nil {
		s.logger.Warn().Err(err).Msg("经验文本向量化失败，跳过语义分项")
		return 0, types.MatchDetail{}, false
	}
	jobVecs, err := embedder.EmbedStrings(ctx, jobChunks)
	if err != nil {
		s.logger.Warn().Err(err).Msg("岗位文本向量化失败，跳过语义分项")
		return 0, types.MatchDetail{}, false
	}

	var (
		sum     float64
		matches []types.ChunkMatch
	)
	for i, rv := range resumeVecs {
		best := 0.0
		bestIdx := 0
		for j, jv := range jobVecs {
			if sim := Cosine(rv, jv); sim > best {
				best = sim
				bestIdx = j
			}
		}
		sum += best
		if best > 0.7 {
			matches = append(matches, types.ChunkMatch{
				ResumeText: resumeChunks[i],
				JobText:    jobChunks[bestIdx],
				Similarity: best,
			})
		}
	}
	semanticScore := sum / float64(len(resumeChunks))

	return semanticScore, types.MatchDetail{
		Type:         "semantic",
		Score:        semanticScore,
		ChunkMatches: matches,
	}, true
}

// analyzeEducation 教育匹配分析
// 总分 = 0.6×学历层级分 + 0.4×专业领域分，同样按跳过不归一的规则降级。
// 岗位未声明学历要求时层级项跳过；
// 岗位未声明专业领域但简历含已知领域时给0.5的固定领域分
func (s *Scorer) analyzeEducation(resume *types.ParsedResume, job *types.JobProfile) (float64, []types.MatchDetail) {
	if resume.Education == "" {
		return 0, nil
	}

	var (
		total   float64
		details []types.MatchDetail
	)

	jdLower := strings.ToLower(job.RawText)
	eduLower := strings.ToLower(resume.Education)

	requiredLevel, requiredRank := highestLevel(jdLower)
	candidateLevel, candidateRank := highestLevel(eduLower)

	if requiredRank > 0 {
		levelScore := 1.0
		if candidateRank < requiredRank {
			levelScore = float64(candidateRank) / float64(requiredRank)
		}
		details = append(details, types.MatchDetail{
			Type:          "level",
			Score:         levelScore,
			RequiredLevel: requiredLevel,
			FoundLevel:    candidateLevel,
		})
		total += levelScore * 0.6
	}

	var requiredFields, candidateFields []string
	for _, field := range taxonomy.FieldsOfStudy {
		if strings.Contains(jdLower, field) {
			requiredFields = append(requiredFields, field)
		}
		if strings.Contains(eduLower, field) {
			candidateFields = append(candidateFields, field)
		}
	}

	if len(requiredFields) > 0 {
		candidateSet := toSet(candidateFields)
		var matchedFields []string
		for _, field := range requiredFields {
			if candidateSet[field] {
				matchedFields = append(matchedFields, field)
			}
		}
		fieldScore := float64(len(matchedFields)) / float64(len(requiredFields))
		details = append(details, types.MatchDetail{
			Type:           "field",
			Score:          fieldScore,
			RequiredFields: requiredFields,
			FoundFields:    candidateFields,
			MatchedFields:  matchedFields,
		})
		total += fieldScore * 0.4
	} else if len(candidateFields) > 0 {
		// 没有目标领域可比对时，持有任一已知领域给固定部分分
		details = append(details, types.MatchDetail{
			Type:        "field",
			Score:       0.5,
			FoundFields: candidateFields,
		})
		total += 0.5 * 0.4
	}

	return total, details
}

// analyzeSimilarity 简历全文与岗位描述的整体语义相似度
// 模型不可用时降级为0分并标记方法为 unavailable，不中断评分
func (s *Scorer) analyzeSimilarity(ctx context.Context, resume *types.ParsedResume, job *types.JobProfile) types.SimilarityAnalysis {
	embedder, err := s.provider.Embedder()
	if err != nil {
		return types.SimilarityAnalysis{Score: 0, Method: "unavailable"}
	}

	resumeText := strings.TrimSpace(strings.Join([]string{
		resume.Name,
		resume.Email,
		resume.Phone,
		strings.Join(resume.Skills, " "),
		resume.Education,
		resume.Experience,
	}, " "))
	if resumeText == "" || strings.TrimSpace(job.RawText) == "" {
		return types.SimilarityAnalysis{Score: 0, Method: similarityMethod}
	}

	vecs, err := embedder.EmbedStrings(ctx, []string{resumeText, job.RawText})
	if err != nil || len(vecs) != 2 {
		s.logger.Warn().Err(err).Msg("整体相似度向量化失败，分项降级为0")
		return types.SimilarityAnalysis{Score: 0, Method: "unavailable"}
	}

	return types.SimilarityAnalysis{
		Score:  clamp01(Cosine(vecs[0], vecs[1])),
		Method: similarityMethod,
	}
}

// sentences 句子切分：优先用识别器，失败时退化为标点切分
func (s *Scorer) sentences(ctx context.Context, text string) []string {
	if recognizer, err := s.provider.Recognizer(); err == nil {
		if sentences, splitErr := recognizer.Sentences(ctx, text); splitErr == nil {
			return sentences
		}
	}
	return parser.SplitSentences(text)
}

// highestLevel 返回文本中出现的最高学历层级
func highestLevel(lowerText string) (string, int) {
	var (
		level string
		rank  int
	)
	for _, l := range taxonomy.EducationLevels {
		if strings.Contains(lowerText, l.Keyword) && l.Rank > rank {
			level = l.Keyword
			rank = l.Rank
		}
	}
	return level, rank
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func emptyBreakdown() *types.ScoreBreakdown {
	return &types.ScoreBreakdown{
		OverallScore:       0,
		ComponentScores:    map[string]float64{},
		SkillsAnalysis:     types.SkillsAnalysis{SkillContexts: map[string][]types.SkillContext{}},
		ExperienceAnalysis: nil,
		EducationAnalysis:  nil,
		SimilarityAnalysis: types.SimilarityAnalysis{Score: 0, Method: "unavailable"},
	}
}
