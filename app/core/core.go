package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/linkvault-ai/linkvault/app/store/sqlstore"
	"github.com/linkvault-ai/linkvault/pkg/ai"
	"github.com/linkvault-ai/linkvault/pkg/ai/local"
	"github.com/linkvault-ai/linkvault/pkg/ai/openai"
	"github.com/linkvault-ai/linkvault/pkg/extract"
	"github.com/linkvault-ai/linkvault/pkg/fetch"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type Core struct {
	cfg CoreConfig

	stores     func() *sqlstore.Provider
	httpEngine *gin.Engine

	fetcher   *fetch.Fetcher
	extractor *extract.Extractor
	embedder  *ai.Generator

	metrics *Metrics
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28,   //days
				Compress:   true, // disabled by default
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	utils.SetupIDWorker(1)
	cfg.Enrich = cfg.Enrich.Normalize()

	core := &Core{
		cfg:        cfg,
		metrics:    NewMetrics("linkvault", "core"),
		httpEngine: gin.New(),
		fetcher:    fetch.NewFetcher(),
		extractor:  extract.NewExtractor(),
	}

	// setup store
	setupSqlStore(core)

	// 未配置远端向量服务时直接使用本地确定性后端
	var primary ai.Embedder
	if cfg.AI.APIKey != "" {
		primary = openai.New(cfg.AI.APIKey, cfg.AI.BaseURL, embedModelOrDefault(cfg.AI), embedDimensionsOrDefault(cfg.AI))
	}
	core.embedder = ai.NewGenerator(cfg.AI, primary, local.New(embedDimensionsOrDefault(cfg.AI)))

	return core
}

func embedModelOrDefault(cfg ai.Config) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return types.DEFAULT_EMBEDDING_MODEL
}

func embedDimensionsOrDefault(cfg ai.Config) int {
	if cfg.Dimensions > 0 {
		return cfg.Dimensions
	}
	return types.DEFAULT_EMBEDDING_DIMENSIONS
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	// 执行数据库表初始化
	if err := core.stores().Install(); err != nil {
		panic(err)
	}
	fmt.Println("setupSqlStore done")
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) Fetcher() *fetch.Fetcher {
	return s.fetcher
}

func (s *Core) Extractor() *extract.Extractor {
	return s.extractor
}

func (s *Core) Embedder() *ai.Generator {
	return s.embedder
}
