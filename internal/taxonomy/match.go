package taxonomy

import (
	"regexp"
	"sort"
	"strings"
)

// 每个技能关键词编译一次，进程内复用
var skillPatterns = buildSkillPatterns()

type skillPattern struct {
	skill string
	re    *regexp.Regexp
}

func buildSkillPatterns() []skillPattern {
	patterns := make([]skillPattern, 0, len(SkillKeywords))
	for _, skill := range SkillKeywords {
		patterns = append(patterns, skillPattern{
			skill: skill,
			re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`),
		})
	}
	return patterns
}

// MatchSkills 在文本中做整词、忽略大小写的技能匹配
// 返回命中的目录词条集合（去重、排序，保证结果确定）
func MatchSkills(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var found []string
	for _, p := range skillPatterns {
		if p.re.MatchString(lower) {
			found = append(found, p.skill)
		}
	}
	sort.Strings(found)
	return found
}
