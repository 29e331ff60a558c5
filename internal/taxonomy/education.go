package taxonomy

// DegreeKeywords 学位关键词，按独立词匹配（两侧为空格或行首尾）
var DegreeKeywords = []string{
	"phd", "ph.d", "doctorate",
	"master", "ms", "msc", "m.s", "m.sc", "ma", "m.a", "mba", "m.b.a",
	"bachelor", "bs", "bsc", "b.s", "b.sc", "ba", "b.a",
	"associate", "as", "a.s",
}

// EducationLevel 学历层级表项
type EducationLevel struct {
	Keyword string
	Rank    int
}

// EducationLevels 学历层级表，Rank越大学历越高
// 同一Rank的关键词视为等价（如 phd 与 doctorate）
var EducationLevels = []EducationLevel{
	{Keyword: "phd", Rank: 5},
	{Keyword: "doctorate", Rank: 5},
	{Keyword: "masters", Rank: 4},
	{Keyword: "bachelors", Rank: 3},
	{Keyword: "associate", Rank: 2},
	{Keyword: "high school", Rank: 1},
}

// FieldsOfStudy 专业领域关键词，按小写子串匹配
var FieldsOfStudy = []string{
	"computer science", "software engineering", "information technology",
	"engineering", "mathematics", "physics", "business", "data science",
	"artificial intelligence", "machine learning", "cybersecurity",
}
