/*
 * This file is part of the SayDos Disk Image Tool ("sdit")
 * Copyright (C) 2025 Andreas Signer <asigner@gmail.com>
 *
 * sdit is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * sdit is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with sdit.  If not, see <https://www.gnu.org/licenses/>.
 */

package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogging points the global logger at stdout and, if configured, at a
// rotating log file.
func InitLogging(level zerolog.Level, cfg Config) {
	initLogging(os.Stdout, level, cfg)
}

func initLogging(out io.Writer, level zerolog.Level, cfg Config) {
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano // Need to keep this, or we won't get millis, no matter what we say in TimeFormat below?

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00", // "RFC3339Millis"
		NoColor:    cfg.NoColor,
	}
	var w io.Writer = console
	if cfg.Logs.File != "" {
		w = zerolog.MultiLevelWriter(console, newRotator(cfg.Logs))
	}
	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()
}

func newRotator(cfg LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
}
