package types

// SectionName 简历章节名称（小写规范形式，作为章节映射的键）
type SectionName string

const (
	// SectionEducation 教育经历章节
	SectionEducation SectionName = "education"
	// SectionExperience 工作经历章节
	SectionExperience SectionName = "experience"
	// SectionSkills 技能章节
	SectionSkills SectionName = "skills"
	// SectionProjects 项目经历章节
	SectionProjects SectionName = "projects"
	// SectionCertifications 证书章节
	SectionCertifications SectionName = "certifications"
	// SectionAwards 获奖章节
	SectionAwards SectionName = "awards"
	// SectionPublications 论文发表章节
	SectionPublications SectionName = "publications"
)

// ParsedResume 解析后的简历结构化数据
// 由提取管线一次性构建，之后视为只读；持久化由调用方负责
type ParsedResume struct {
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	Phone      string                 `json:"phone"`
	Skills     []string               `json:"skills"` // 规范化小写技能关键词，已去重排序（集合语义）
	Education  string                 `json:"education"`
	Experience string                 `json:"experience"`
	Sections   map[SectionName]string `json:"sections"`
}

// JobProfile 岗位画像，由岗位描述文本一次性派生
// RequiredSkills 不强制是 ImpliedSkills 的子集：
// 仅出现在需求关键词附近的技能也会被收入必备技能
type JobProfile struct {
	RawText        string   `json:"raw_text"`
	ImpliedSkills  []string `json:"implied_skills"`
	RequiredSkills []string `json:"required_skills"`
}

// 组件分数名称
const (
	ComponentSkillsMatch        = "skills_match"
	ComponentRequiredSkills     = "required_skills_match"
	ComponentExperienceMatch    = "experience_match"
	ComponentEducationMatch     = "education_match"
	ComponentSemanticSimilarity = "semantic_similarity"
)

// Weights 各评分组件的权重，要求总和为1.0
type Weights struct {
	SkillsMatch       float64 `json:"skills_match" yaml:"skills_match"`
	RequiredSkills    float64 `json:"required_skills" yaml:"required_skills"`
	ExperienceMatch   float64 `json:"experience_match" yaml:"experience_match"`
	EducationMatch    float64 `json:"education_match" yaml:"education_match"`
	OverallSimilarity float64 `json:"overall_similarity" yaml:"overall_similarity"`
}

// DefaultWeights 默认评分权重
func DefaultWeights() Weights {
	return Weights{
		SkillsMatch:       0.35,
		RequiredSkills:    0.25,
		ExperienceMatch:   0.20,
		EducationMatch:    0.10,
		OverallSimilarity: 0.10,
	}
}

// Sum 权重总和
func (w Weights) Sum() float64 {
	return w.SkillsMatch + w.RequiredSkills + w.ExperienceMatch + w.EducationMatch + w.OverallSimilarity
}

// SkillContext 技能在简历中出现的位置（章节 + 句子）
type SkillContext struct {
	Section  SectionName `json:"section"`
	Sentence string      `json:"sentence"`
}

// SkillsAnalysis 技能匹配明细
type SkillsAnalysis struct {
	MatchedSkills   []string                  `json:"matched_skills"`
	MissingSkills   []string                  `json:"missing_skills"`
	MissingRequired []string                  `json:"missing_required"`
	RequiredSkills  []string                  `json:"required_skills"`
	SkillContexts   map[string][]SkillContext `json:"skill_contexts"`
}

// ChunkMatch 经验文本块与岗位描述块的强相似匹配（相似度 > 0.7 才收录）
type ChunkMatch struct {
	ResumeText string  `json:"resume_text"`
	JobText    string  `json:"job_text"`
	Similarity float64 `json:"similarity"`
}

// MatchDetail 单项匹配明细
// Type 取值: years / semantic / level / field，仅对应字段有意义
type MatchDetail struct {
	Type           string       `json:"type"`
	Score          float64      `json:"score"`
	RequiredYears  int          `json:"required_years,omitempty"`
	FoundYears     int          `json:"found_years,omitempty"`
	RequiredLevel  string       `json:"required_level,omitempty"`
	FoundLevel     string       `json:"found_level,omitempty"`
	RequiredFields []string     `json:"required_fields,omitempty"`
	FoundFields    []string     `json:"found_fields,omitempty"`
	MatchedFields  []string     `json:"matched_fields,omitempty"`
	ChunkMatches   []ChunkMatch `json:"chunk_matches,omitempty"`
}

// SimilarityAnalysis 整体语义相似度明细
type SimilarityAnalysis struct {
	Score  float64 `json:"score"`
	Method string  `json:"method"`
}

// ScoreBreakdown 简历与岗位的完整评分结果
// 每个组件分数独立处于[0,100]，OverallScore 为各组件原始分的加权凸组合×100
type ScoreBreakdown struct {
	OverallScore       float64            `json:"overall_score"`
	ComponentScores    map[string]float64 `json:"component_scores"`
	SkillsAnalysis     SkillsAnalysis     `json:"skills_analysis"`
	ExperienceAnalysis []MatchDetail      `json:"experience_analysis"`
	EducationAnalysis  []MatchDetail      `json:"education_analysis"`
	SimilarityAnalysis SimilarityAnalysis `json:"similarity_analysis"`
}
