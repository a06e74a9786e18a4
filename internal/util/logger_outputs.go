package util

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleOutput writes records to stderr
type ConsoleOutput struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewConsoleOutput() Output {
	return &ConsoleOutput{writer: os.Stderr}
}

func (c *ConsoleOutput) Write(record LogRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.writer, "%s [%s] %s\n",
		record.Timestamp.Format("2006/01/02 15:04:05"), record.Level, record.Message)
	return err
}

func (c *ConsoleOutput) Close() error { return nil }

// FileOutput appends records to a file
type FileOutput struct {
	file *os.File
	mu   sync.Mutex
}

func NewFileOutput(path string) (Output, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &FileOutput{file: file}, nil
}

func (f *FileOutput) Write(record LogRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := fmt.Fprintf(f.file, "%s [%s] %s\n",
		record.Timestamp.Format("2006/01/02 15:04:05"), record.Level, record.Message)
	return err
}

func (f *FileOutput) Close() error { return f.file.Close() }
