package taxonomy

import "resume-match-go/internal/types"

// HeaderPattern 章节标题模式，Pattern 为行首锚定的同义词选择式
type HeaderPattern struct {
	Name    types.SectionName
	Pattern string
}

// SectionHeaderPatterns 章节标题模式表
// 顺序即优先级：同一行命中多个模式时，排在前面的胜出
var SectionHeaderPatterns = []HeaderPattern{
	{Name: types.SectionEducation, Pattern: `(?i)^(education|academic|qualifications|academic background)`},
	{Name: types.SectionExperience, Pattern: `(?i)^(experience|work|employment|job history|professional background)`},
	{Name: types.SectionSkills, Pattern: `(?i)^(skills|technical skills|core competencies|expertise)`},
	{Name: types.SectionProjects, Pattern: `(?i)^(projects|personal projects|academic projects)`},
	{Name: types.SectionCertifications, Pattern: `(?i)^(certifications|certificates|accreditations)`},
	{Name: types.SectionAwards, Pattern: `(?i)^(awards|achievements|honors)`},
	{Name: types.SectionPublications, Pattern: `(?i)^(publications|research|papers)`},
}

// ExperienceKeywords 经验相关关键词，用于定位经验文本块和兜底句子筛选
var ExperienceKeywords = []string{
	"experience", "work history", "employment", "job history",
	"professional experience", "work experience", "career",
}

// RequirementSpanPatterns 岗位描述中需求段落的捕获模式
// 每个模式捕获标题之后直到空行或文本结尾的内容
var RequirementSpanPatterns = []string{
	`(?is)required skills?:?(.*?)(?:\n\n|\z)`,
	`(?is)requirements?:?(.*?)(?:\n\n|\z)`,
	`(?is)must have:?(.*?)(?:\n\n|\z)`,
	`(?is)essential skills?:?(.*?)(?:\n\n|\z)`,
	`(?is)key skills?:?(.*?)(?:\n\n|\z)`,
}

// RequirementKeywords 需求提示词：所在行上出现的技能视为必备技能
var RequirementKeywords = []string{"required", "must have", "essential", "necessary"}
