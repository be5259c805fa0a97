package log

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AakashShahi/workday/pkg/requestid"
)

// StructuredLogger traces a named operation through its steps. Steps and
// successes are written at debug level, errors at error level.
type StructuredLogger struct {
	name string
}

func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name}
}

func (l *StructuredLogger) WithContext(ctx context.Context) *ContextLogger {
	return &ContextLogger{name: l.name, ctx: ctx}
}

type ContextLogger struct {
	name string
	ctx  context.Context
}

func (c *ContextLogger) Operation(op string) *OperationBuilder {
	fields := []zap.Field{zap.String("operation", op)}
	if id := requestid.FromContext(c.ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return &OperationBuilder{name: c.name, op: op, fields: fields}
}

type OperationBuilder struct {
	name   string
	op     string
	fields []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithStringPtr(key string, value *string) *OperationBuilder {
	if value != nil {
		b.fields = append(b.fields, zap.String(key, *value))
	}
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	return &OperationTracer{name: b.name, op: b.op, fields: b.fields, start: time.Now()}
}

// OperationTracer emits the entries of a single operation. Every entry
// carries the fields given to the builder.
type OperationTracer struct {
	name   string
	op     string
	fields []zap.Field
	start  time.Time
}

func (t *OperationTracer) Step(step string) *Entry {
	return t.entry(zapcore.DebugLevel, fmt.Sprintf("%s: %s", t.op, step))
}

func (t *OperationTracer) Success() *Entry {
	return t.entry(zapcore.DebugLevel, fmt.Sprintf("%s: success", t.op)).
		WithParam("duration", time.Since(t.start))
}

func (t *OperationTracer) Error(err error) *Entry {
	return t.entry(zapcore.ErrorLevel, fmt.Sprintf("%s: failed", t.op)).
		WithParam("error", err)
}

func (t *OperationTracer) entry(lvl zapcore.Level, msg string) *Entry {
	fields := make([]zap.Field, len(t.fields), len(t.fields)+4)
	copy(fields, t.fields)
	return &Entry{name: t.name, lvl: lvl, msg: msg, fields: fields}
}

type Entry struct {
	name   string
	lvl    zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *Entry) WithString(key, value string) *Entry {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Entry) WithUUID(key string, value uuid.UUID) *Entry {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Entry) WithBool(key string, value bool) *Entry {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Entry) WithParam(key string, value any) *Entry {
	if err, ok := value.(error); ok {
		e.fields = append(e.fields, zap.NamedError(key, err))
		return e
	}
	e.fields = append(e.fields, zap.Any(key, value))
	return e
}

func (e *Entry) Log() {
	logger := zap.L().Named(e.name)
	if ce := logger.Check(e.lvl, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
