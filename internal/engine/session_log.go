package engine

import (
	"fmt"
	"time"

	"cavesight/pkg/api"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

// maxPendingLogs - сколько сообщений копится между кадрами.
const maxPendingLogs = 64

// AddLog добавляет сообщение в лог сессии. Вызывается под мьютексом.
func (s *Session) AddLog(text, logType string) {
	if len(s.logs) >= maxPendingLogs {
		s.logs = s.logs[1:]
	}
	s.logs = append(s.logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d_%d", s.ID, s.tick, len(s.logs)),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"session":   s.ID,
		"component": "session_log",
		"log_type":  logType,
	}).Info(text)
}
