package taxonomy

// SkillKeywords 技能关键词目录（固定启发式表，简历与岗位描述共用）
// 全部为小写规范形式，匹配时按整词边界、忽略大小写
var SkillKeywords = []string{
	// 编程语言
	"python", "java", "javascript", "c++", "c#", "ruby", "php", "swift", "kotlin", "typescript",
	"scala", "rust", "go", "perl", "r", "matlab", "objective-c", "dart", "shell", "powershell",

	// Web开发
	"html", "css", "jquery", "bootstrap", "sass", "less", "angular", "react", "vue", "node",
	"django", "flask", "spring", "asp.net", "laravel", "symfony", "wordpress", "shopify",

	// 数据库
	"sql", "mysql", "postgresql", "mongodb", "oracle", "cassandra", "redis", "sqlite",
	"dynamodb", "firestore", "couchdb", "mariadb", "mssql", "neo4j",

	// 云平台
	"aws", "azure", "gcp", "google cloud", "heroku", "digital ocean", "firebase",
	"cloudflare", "vercel", "netlify",

	// DevOps
	"docker", "kubernetes", "jenkins", "gitlab", "github actions", "terraform", "ansible",
	"chef", "puppet", "circleci", "travis", "prometheus", "grafana",

	// 数据科学
	"machine learning", "deep learning", "tensorflow", "pytorch", "keras", "scikit-learn",
	"pandas", "numpy", "scipy", "data analysis", "data visualization", "jupyter",
	"tableau", "power bi", "hadoop", "spark", "kafka",

	// 移动端
	"android", "ios", "react native", "flutter", "xamarin", "ionic", "cordova",
	"mobile development",

	// 其他技术能力
	"git", "agile", "scrum", "jira", "rest api", "graphql", "microservices",
	"unit testing", "ci/cd", "serverless", "blockchain", "ai", "nlp",

	// 软技能
	"leadership", "communication", "teamwork", "problem solving", "time management",
	"project management", "critical thinking", "creativity", "collaboration",
}
