package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"resume-match-go/internal/analyzer"
	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/model"
	"resume-match-go/internal/parser"
)

// 命令行参数定义
var (
	configPath string
	command    string
	resumePath string
	jobPath    string
)

func main() {
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径(YAML)，留空使用内置默认配置")
	pflag.StringVar(&command, "cmd", "score", "执行的命令: parse=仅解析简历, score=解析并评分")
	pflag.StringVar(&resumePath, "resume", "", "简历文件路径(pdf/docx/txt) (必填)")
	pflag.StringVar(&jobPath, "job", "", "岗位描述文本文件路径 (score命令必填)")
	pflag.Parse()

	// 1. 加载配置
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger.Init(cfg.Logger)

	if resumePath == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须通过 --resume 指定简历文件")
		pflag.Usage()
		os.Exit(1)
	}

	// 2. 初始化模型资源提供者（惰性加载，进程内复用）
	provider := model.NewLocalProvider(model.EncoderConfig{
		OrtDLL:        cfg.Model.OrtDLL,
		ModelPath:     cfg.Model.ModelPath,
		TokenizerPath: cfg.Model.TokenizerPath,
		MaxSeqLen:     cfg.Model.MaxSeqLen,
	}, model.WithProviderLogger(logger.Component("model")))

	ctx := context.Background()

	// 3. 解析简历
	resumeParser := parser.NewParser(provider, parser.WithParserLogger(logger.Component("parser")))
	resume, err := resumeParser.ParseFile(ctx, resumePath)
	if err != nil {
		logger.Error().Err(err).Str("path", resumePath).Msg("简历解析失败")
		os.Exit(1)
	}

	switch command {
	case "parse":
		printJSON(resume)
	case "score":
		if jobPath == "" {
			fmt.Fprintln(os.Stderr, "错误: score命令必须通过 --job 指定岗位描述文件")
			pflag.Usage()
			os.Exit(1)
		}
		jobText, err := os.ReadFile(jobPath)
		if err != nil {
			logger.Error().Err(err).Str("path", jobPath).Msg("读取岗位描述失败")
			os.Exit(1)
		}

		scorer := analyzer.NewScorer(provider, analyzer.WithScorerLogger(logger.Component("analyzer")))
		breakdown := scorer.Score(ctx, resume, parser.NormalizeText(string(jobText)), &cfg.Scoring.Weights)
		printJSON(breakdown)
	default:
		fmt.Fprintf(os.Stderr, "错误: 未知命令 '%s'。支持的命令: parse, score\n", command)
		pflag.Usage()
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "序列化结果失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
