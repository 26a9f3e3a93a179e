// Package notify - всплывающие уведомления для пользователя.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier - получатель уведомлений
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Console - печатает уведомления в терминал
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Success(msg string) {
	c.print(successStyle.Render("✓ ") + msg)
}

func (c *Console) Error(msg string) {
	c.print(errorStyle.Render("✗ ") + msg)
}

func (c *Console) print(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// Log - пишет уведомления в лог локальной витрины
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Success(msg string) {
	l.log.Info(msg, zap.String("notification", string(LevelSuccess)))
}

func (l *Log) Error(msg string) {
	l.log.Warn(msg, zap.String("notification", string(LevelError)))
}

// Notification - запись в Recorder
type Notification struct {
	Level   Level
	Message string
}

// Recorder - запоминает уведомления; последнее забирается в ответ витрины через Take
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }

func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: msg})
}

// All - копия всех уведомлений
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last - последнее уведомление
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Take - последнее уведомление, записи очищаются
func (r *Recorder) Take() (Notification, bool) {
	if r == nil {
		return Notification{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	last := r.items[len(r.items)-1]
	r.items = nil
	return last, true
}

// Multi - рассылает уведомление всем получателям
type Multi []Notifier

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}
