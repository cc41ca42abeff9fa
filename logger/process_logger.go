package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ProcessLogger receives the output of a detached emulator process and
// appends every line as a JSON document to its own log file
type ProcessLogger struct {
	mu       sync.Mutex
	file     *os.File
	platform string
	deviceID string
	pending  []byte
}

type processLogEntry struct {
	Platform  string `json:"platform"`
	DeviceID  string `json:"device_id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// NewProcessLogger opens <dir>/<platform>_<deviceID>.log
func NewProcessLogger(dir, platform, deviceID string) (*ProcessLogger, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("could not create process logs folder - %w", err)
	}

	file, err := os.OpenFile(ProcessLogPath(dir, platform, deviceID), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open process log file - %w", err)
	}

	return &ProcessLogger{file: file, platform: platform, deviceID: deviceID}, nil
}

func ProcessLogPath(dir, platform, deviceID string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.log", platform, sanitizeFileName(deviceID)))
}

func (l *ProcessLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, p...)
	for {
		idx := bytes.IndexByte(l.pending, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimSpace(string(l.pending[:idx]))
		l.pending = l.pending[idx+1:]
		if line == "" {
			continue
		}
		if err := l.writeLine(line); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

func (l *ProcessLogger) writeLine(line string) error {
	jsonData, err := json.Marshal(processLogEntry{
		Platform:  l.platform,
		DeviceID:  l.deviceID,
		Message:   line,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}

	_, err = l.file.Write(append(jsonData, '\n'))
	return err
}

// Close flushes an unterminated trailing line and closes the file
func (l *ProcessLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if line := strings.TrimSpace(string(l.pending)); line != "" {
		l.writeLine(line)
	}
	l.pending = nil
	return l.file.Close()
}

func sanitizeFileName(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, value)
}

// ProcessLogMessages returns the messages of the last n entries of a process log,
// lines that are not process log entries are returned as they are
func ProcessLogMessages(path string, n int) ([]string, error) {
	lines, err := TailLines(path, n)
	if err != nil {
		return nil, err
	}

	messages := make([]string, 0, len(lines))
	for _, line := range lines {
		var entry processLogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Message == "" {
			messages = append(messages, line)
			continue
		}
		messages = append(messages, entry.Message)
	}
	return messages, nil
}

// TailLines returns the last n lines of the file at path
func TailLines(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(lines) == n {
			lines = lines[1:]
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read `%s`: %w", path, err)
	}
	return lines, nil
}
