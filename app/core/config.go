package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/linkvault-ai/linkvault/pkg/ai"
	"github.com/linkvault-ai/linkvault/pkg/chunker"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	conf.SetConfigBytes(raw)

	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func (c CoreConfig) LoadCustomConfig(cfg any) error {
	if len(c.bytes) == 0 {
		return nil
	}
	if err := toml.Unmarshal(c.bytes, cfg); err != nil {
		return err
	}
	return nil
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string   `toml:"addr"`
	Log      Log      `toml:"log"`
	Postgres PGConfig `toml:"postgres"`

	AI     ai.Config    `toml:"ai"`
	Enrich EnrichConfig `toml:"enrich"`

	bytes []byte `toml:"-"`
}

func (c *CoreConfig) SetConfigBytes(raw []byte) {
	c.bytes = raw
}

// EnrichConfig 后台富化任务的调度参数
type EnrichConfig struct {
	Concurrency      int `toml:"concurrency"`        // 同时处理的任务数，默认 5
	SweepIntervalSec int `toml:"sweep_interval_sec"` // 待处理任务轮询间隔，默认 30 秒
	BatchSize        int `toml:"batch_size"`         // 每次轮询捞取的任务数，默认 20
	ChunkSize        int `toml:"chunk_size"`         // 切片长度，默认 500
	ChunkOverlap     int `toml:"chunk_overlap"`      // 切片重叠，默认 50
}

func (e EnrichConfig) Normalize() EnrichConfig {
	if e.Concurrency <= 0 {
		e.Concurrency = 5
	}
	if e.SweepIntervalSec <= 0 {
		e.SweepIntervalSec = 30
	}
	if e.BatchSize <= 0 {
		e.BatchSize = 20
	}
	if e.ChunkSize <= 0 {
		e.ChunkSize = chunker.DefaultChunkSize
	}
	if e.ChunkOverlap <= 0 {
		e.ChunkOverlap = chunker.DefaultOverlap
	}
	return e
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("LV_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.AI.APIKey = os.Getenv("LV_EMBEDDING_API_KEY")
	c.AI.BaseURL = os.Getenv("LV_EMBEDDING_BASE_URL")
	c.AI.Model = os.Getenv("LV_EMBEDDING_MODEL")
	if dims := os.Getenv("LV_EMBEDDING_DIMENSIONS"); dims != "" {
		if v, err := strconv.Atoi(dims); err == nil {
			c.AI.Dimensions = v
		}
	}
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("LV_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("LV_API_LOG_LEVEL")
	l.Path = os.Getenv("LV_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
