package service

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

const (
	levelDebug = iota
	levelInfo
	levelWarning
	levelError
)

const logBufferSize = 256

type message struct {
	text     string
	source   string
	logLevel int
}

// LoggerService writes log lines from a single goroutine so request handlers
// never contend on the log file.
type LoggerService struct {
	messages  chan message
	waitGroup *sync.WaitGroup
	logPath   string
	version   string
	once      sync.Once
}

func NewLoggerService(path string, version string) (*LoggerService, error) {
	file, errLog := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if errLog != nil {
		return nil, errLog
	}

	l := newLogger(io.MultiWriter(os.Stdout, file), path, version)
	go func() {
		l.waitGroup.Wait()
		file.Close()
	}()
	return l, nil
}

// NewWriterLogger logs to w only, without a log file.
func NewWriterLogger(w io.Writer, version string) *LoggerService {
	return newLogger(w, "", version)
}

func newLogger(w io.Writer, path string, version string) *LoggerService {
	l := &LoggerService{
		messages:  make(chan message, logBufferSize),
		waitGroup: &sync.WaitGroup{},
		logPath:   path,
		version:   "v" + version,
	}

	l.waitGroup.Add(1)
	go l.run(w)

	return l
}

func (l *LoggerService) run(w io.Writer) {
	defer l.waitGroup.Done()

	loggers := map[int]*log.Logger{
		levelDebug:   log.New(w, "[DEBUG] ", log.Ldate|log.Ltime),
		levelInfo:    log.New(w, "[INFO] ", log.Ldate|log.Ltime),
		levelWarning: log.New(w, "[WARNING] ", log.Ldate|log.Ltime),
		levelError:   log.New(w, "[ERROR] ", log.Ldate|log.Ltime),
	}

	for msg := range l.messages {
		loggers[msg.logLevel].Println(l.version + " " + msg.source + " " + msg.text)
	}
}

// Shutdown flushes pending lines. Logging after Shutdown panics.
func (l *LoggerService) Shutdown() {
	l.once.Do(func() {
		close(l.messages)
	})
	l.waitGroup.Wait()
}

func getModuleName() string {
	_, fileName, line, ok := runtime.Caller(2)
	if ok {
		return fmt.Sprintf("%s:%d", filepath.Base(fileName), line)
	}
	return "<unknown>"
}

func (l *LoggerService) Debug(msg string) {
	l.messages <- message{text: msg, source: getModuleName(), logLevel: levelDebug}
}

func (l *LoggerService) Info(msg string) {
	l.messages <- message{text: msg, source: getModuleName(), logLevel: levelInfo}
}

func (l *LoggerService) Warning(msg string) {
	l.messages <- message{text: msg, source: getModuleName(), logLevel: levelWarning}
}

func (l *LoggerService) Exception(msg string) {
	l.messages <- message{text: msg, source: getModuleName(), logLevel: levelError}
}

// ClearOldLogs removes .log files next to the current log file that are
// older than retentionPeriod.
func (l *LoggerService) ClearOldLogs(retentionPeriod time.Duration) error {
	if l.logPath == "" {
		return nil
	}

	normalizedLogPath, err := filepath.Abs(filepath.Clean(l.logPath))
	if err != nil {
		return fmt.Errorf("error normalizing log path: %w", err)
	}

	dir := filepath.Dir(l.logPath)
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && path != dir {
			return filepath.SkipDir
		}

		normalizedPath, err := filepath.Abs(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("error normalizing path: %w", err)
		}

		if normalizedPath == normalizedLogPath {
			return nil
		}

		if !info.IsDir() && filepath.Ext(info.Name()) == ".log" && time.Since(info.ModTime()) > retentionPeriod {
			l.Info(fmt.Sprintf("Deleting old log: %s", path))
			return os.Remove(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error deleting old logs: %w", err)
	}

	return nil
}
