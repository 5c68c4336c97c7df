// Package middleware provides audit logging utilities.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/service"
)

// AuditLog records a calculate, export or constants update for audit purposes.
// runID may be empty for actions not tied to a calculation run.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType, runID, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	entry := newAuditEntry(c, "info", actionType, runID, message, fields)
	enqueueAudit(loggingService, entry)
}

// AuditLogError records a failed action for audit purposes.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType, runID, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	entry := newAuditEntry(c, "error", actionType, runID, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	enqueueAudit(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level, actionType, runID, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Subject:    GetSubject(c),
		ActionType: actionType,
		RunID:      runID,
		Fields:     fields,
	}
}

// enqueueAudit uses the worker pool when it is running and a one-off goroutine otherwise.
func enqueueAudit(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
