package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

var (
	loggerInit  sync.Once
	infoLogger  *log.Logger
	errorLogger *log.Logger
)

// openLogOutput opens the daily log file, falling back to stderr so that
// logging never takes the process down.
func openLogOutput() io.Writer {
	if err := os.MkdirAll("logs", 0755); err != nil {
		return os.Stderr
	}
	name := fmt.Sprintf("logs/app-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return os.Stderr
	}
	return f
}

func initLoggers() {
	out := openLogOutput()
	infoLogger = log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger = log.New(out, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// LogInfo writes an info line to the daily log file
func LogInfo(format string, v ...interface{}) {
	loggerInit.Do(initLoggers)
	infoLogger.Printf(format, v...)
}

// LogError writes an error line to the daily log file
func LogError(format string, v ...interface{}) {
	loggerInit.Do(initLoggers)
	errorLogger.Printf(format, v...)
}
