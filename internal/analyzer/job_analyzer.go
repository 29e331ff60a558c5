package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"
)

var requirementSpanRes = compileRequirementSpans()

func compileRequirementSpans() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(taxonomy.RequirementSpanPatterns))
	for _, pattern := range taxonomy.RequirementSpanPatterns {
		res = append(res, regexp.MustCompile(pattern))
	}
	return res
}

// AnalyzeJob 从岗位描述文本派生岗位画像
// 隐含技能 = 全文技能目录匹配；
// 必备技能 = 需求段落（required skills: / requirements: 等，到空行或结尾）内的技能
// 与需求关键词所在行上的技能之并集。必备技能不要求是隐含技能的子集
func AnalyzeJob(text string) *types.JobProfile {
	profile := &types.JobProfile{
		RawText:       text,
		ImpliedSkills: taxonomy.MatchSkills(text),
	}

	lower := strings.ToLower(text)
	required := make(map[string]bool)

	for _, re := range requirementSpanRes {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			for _, skill := range taxonomy.MatchSkills(m[1]) {
				required[skill] = true
			}
		}
	}

	for _, line := range strings.Split(lower, "\n") {
		for _, keyword := range taxonomy.RequirementKeywords {
			if strings.Contains(line, keyword) {
				for _, skill := range taxonomy.MatchSkills(line) {
					required[skill] = true
				}
				break
			}
		}
	}

	profile.RequiredSkills = sortedKeys(required)
	return profile
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
