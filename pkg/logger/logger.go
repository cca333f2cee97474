package logger

import (
	"log"
	"os"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
	WarnLogger  *log.Logger
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func Info(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}

func Error(format string, v ...interface{}) {
	ErrorLogger.Printf(format, v...)
}

func Debug(format string, v ...interface{}) {
	if os.Getenv("ENVIRONMENT") == "development" {
		DebugLogger.Printf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	WarnLogger.Printf(format, v...)
}

// Helper for mirrored-write failures (match/request/transaction fan-out)
func LogReplicationError(userID, action string, err error) {
	Warn("Replication error: action=%s, userID=%s, error=%v", action, userID, err)
}
