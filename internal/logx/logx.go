package logx

import (
	"log"
	"os"
)

type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var (
	level  = LevelWarn
	logger = log.New(os.Stderr, "", log.LstdFlags)
)

func SetLevel(l Level) {
	level = l
}

// SetVerbose switches between the default warn-only output and debug output.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelWarn)
	}
}

func Errorf(format string, args ...any) {
	if level >= LevelError {
		logger.Printf("[ERROR] "+format, args...)
	}
}

func Warnf(format string, args ...any) {
	if level >= LevelWarn {
		logger.Printf("[WARN] "+format, args...)
	}
}

func Infof(format string, args ...any) {
	if level >= LevelInfo {
		logger.Printf("[INFO] "+format, args...)
	}
}

func Debugf(format string, args ...any) {
	if level >= LevelDebug {
		logger.Printf("[DEBUG] "+format, args...)
	}
}
