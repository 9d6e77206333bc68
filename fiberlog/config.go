package fiberlog

import (
	"slices"

	"github.com/sirupsen/logrus"
)

// Config настройки журнала запросов
type Config struct {
	// nil - стандартный логгер logrus
	Logger *logrus.Logger
	Tags   []string
	// запросы по этим путям не пишутся в журнал (долгие websocket соединения)
	SkipPaths []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
		TagUserID,
		TagRequestID,
	},
}

func (c Config) skip(path string) bool {
	return slices.Contains(c.SkipPaths, path)
}
