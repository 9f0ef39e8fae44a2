package log

// Logging for the chart generator.
// Console shows SUCCESS / WARN / ERROR lines for the person running the tool.
// Optional file log (Init with a directory) keeps every level with fields as JSON.

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var (
	Logger        *zap.Logger // file (or nop when no log dir)
	consoleLogger *zap.Logger // WARN, ERROR and SUCCESS
	mu            sync.RWMutex
)

var bufferPool = buffer.NewPool()

func init() {
	console, err := newConsoleLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize console logger: %v\n", err)
		console = zap.NewNop()
	}
	Logger = zap.NewNop()
	consoleLogger = console
}

// Options controls where logs go.
type Options struct {
	// Dir enables the file log at Dir/app.log; empty disables it.
	Dir string
	// Debug lowers the console level to DEBUG.
	Debug bool
}

// Init rebuilds the loggers. Safe to call once per process from the command layer.
func Init(opts Options) error {
	console, err := newConsoleLogger(opts.Debug)
	if err != nil {
		return fmt.Errorf("failed to build console logger: %w", err)
	}

	file := zap.NewNop()
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
		file = newFileLogger(filepath.Join(opts.Dir, "app.log"))
	}

	mu.Lock()
	Logger = file
	consoleLogger = console
	mu.Unlock()
	return nil
}

// Sync flushes both loggers.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = Logger.Sync()
	_ = consoleLogger.Sync()
}

func loggers() (*zap.Logger, *zap.Logger) {
	mu.RLock()
	defer mu.RUnlock()
	return Logger, consoleLogger
}

func newFileLogger(path string) *zap.Logger {
	fileConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	fileEncoder := &customFileEncoder{Encoder: zapcore.NewConsoleEncoder(fileConfig)}
	fileCore := zapcore.NewCore(
		fileEncoder,
		getLogFileWriter(path),
		zapcore.DebugLevel,
	)
	return zap.New(fileCore)
}

func newConsoleLogger(debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	consoleConfig := zap.NewDevelopmentConfig()
	consoleConfig.EncoderConfig.EncodeLevel = customLevelEncoder
	consoleConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleConfig.EncoderConfig.EncodeCaller = nil
	consoleConfig.Development = false
	consoleConfig.DisableStacktrace = true
	consoleConfig.Level = zap.NewAtomicLevelAt(level)
	return consoleConfig.Build()
}

// GenerateRequestID returns a short random id for correlating request/response lines.
func GenerateRequestID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// LogRequest HTTP request (file only)
func LogRequest(requestID, method, endpoint string, fields ...zap.Field) {
	file, _ := loggers()
	allFields := append([]zap.Field{
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	}, fields...)
	file.Info("HTTP request", allFields...)
}

// LogResponse HTTP response; failures are echoed to the console
func LogResponse(requestID string, statusCode int, durationMs int64, fields ...zap.Field) {
	file, console := loggers()
	allFields := append([]zap.Field{
		zap.String("request_id", requestID),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", durationMs),
	}, fields...)

	if statusCode >= 200 && statusCode < 300 {
		file.Info("HTTP response", allFields...)
		console.Debug(fmt.Sprintf("HTTP %d %s (%dms)", statusCode, fieldsToString(fields), durationMs))
		return
	}

	file.Error("HTTP response", allFields...)
	if endpointStr := fieldsToString(fields); endpointStr != "" {
		console.Error(fmt.Sprintf("✗ HTTP request failed [%d] %s", statusCode, endpointStr))
	} else {
		console.Error(fmt.Sprintf("✗ HTTP request failed [%d]", statusCode))
	}
}

var (
	debugLabel   = color.New(color.FgCyan).Sprint("DEBUG")
	successLabel = color.New(color.FgGreen).Sprint("SUCCESS")
	warnLabel    = color.New(color.FgYellow).Sprint("WARN")
	errorLabel   = color.New(color.FgRed).Sprint("ERROR")
	fatalLabel   = color.New(color.FgRed, color.Bold).Sprint("FATAL")
)

func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(debugLabel)
	case zapcore.InfoLevel:
		enc.AppendString(successLabel) // console INFO = SUCCESS
	case zapcore.WarnLevel:
		enc.AppendString(warnLabel)
	case zapcore.ErrorLevel:
		enc.AppendString(errorLabel)
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		enc.AppendString(fatalLabel)
	default:
		enc.AppendString(color.WhiteString(level.String()))
	}
}

// LogInfo file only
func LogInfo(message string, fields ...zap.Field) {
	file, _ := loggers()
	file.Info(message, fields...)
}

// LogSuccess file and console
func LogSuccess(message string, fields ...zap.Field) {
	file, console := loggers()
	file.Info(message, fields...)

	if durationMs := extractDuration(fields); durationMs > 0 {
		console.Info(fmt.Sprintf("✓ %s (%dms)", message, durationMs))
	} else {
		console.Info("✓ " + message)
	}
}

// LogError file and console
func LogError(message string, fields ...zap.Field) {
	file, console := loggers()
	file.Error(message, fields...)

	if durationMs := extractDuration(fields); durationMs > 0 {
		console.Error(fmt.Sprintf("✗ %s (%dms)", message, durationMs))
	} else {
		console.Error("✗ "+message, errorFields(fields)...)
	}
}

// LogWarn file and console
func LogWarn(message string, fields ...zap.Field) {
	file, console := loggers()
	file.Warn(message, fields...)
	console.Warn(message, errorFields(fields)...)
}

// LogDebug file, and console when debug is on
func LogDebug(message string, fields ...zap.Field) {
	file, console := loggers()
	file.Debug(message, fields...)
	console.Debug(message, fields...)
}

// LogJSON pretty-prints an API payload into the file log.
func LogJSON(data []byte, label string) {
	file, _ := loggers()
	var pretty interface{}
	if err := json.Unmarshal(data, &pretty); err == nil {
		if formatted, err := json.MarshalIndent(pretty, "", "  "); err == nil {
			file.Debug(label)
			file.Sugar().Debugf("\n%s\n", string(formatted))
			return
		}
	}
	file.Debug(label, zap.String("response", string(data)))
}

// extractDuration duration_ms from zap fields
func extractDuration(fields []zap.Field) int64 {
	for _, field := range fields {
		if field.Key == "duration_ms" && field.Type == zapcore.Int64Type {
			return field.Integer
		}
	}
	return 0
}

// errorFields keeps only error fields so console lines stay short.
func errorFields(fields []zap.Field) []zap.Field {
	var out []zap.Field
	for _, field := range fields {
		if field.Type == zapcore.ErrorType {
			out = append(out, field)
		}
	}
	return out
}

// fieldsToString endpoint field value, if any
func fieldsToString(fields []zap.Field) string {
	for _, field := range fields {
		if field.Key == "endpoint" {
			return field.String
		}
	}
	return ""
}

const (
	// MaxLogFileSize - file is truncated past 50MB
	MaxLogFileSize = 50 * 1024 * 1024
)

type truncatingLogWriter struct {
	file *os.File
	path string
	mu   sync.Mutex
}

func (w *truncatingLogWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := w.file.Stat()
	if err == nil && info.Size() > MaxLogFileSize {
		w.file.Close()
		w.file, err = os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return 0, fmt.Errorf("failed to truncate log file: %w", err)
		}
	}

	return w.file.Write(p)
}

func (w *truncatingLogWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

// getLogFileWriter append-mode writer, stderr if the file cannot be opened
func getLogFileWriter(path string) zapcore.WriteSyncer {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v, falling back to stderr\n", path, err)
		return zapcore.AddSync(os.Stderr)
	}
	return zapcore.AddSync(&truncatingLogWriter{file: file, path: path})
}

// customFileEncoder writes "time     LEVEL msg\t{json fields}"
type customFileEncoder struct {
	zapcore.Encoder
}

func (e *customFileEncoder) Clone() zapcore.Encoder {
	return &customFileEncoder{Encoder: e.Encoder.Clone()}
}

func (e *customFileEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferPool.Get()

	buf.AppendString(entry.Time.Format("2006-01-02 15:04:05"))
	buf.AppendString("     ")
	buf.AppendString(entry.Level.CapitalString())
	buf.AppendString(" ")
	buf.AppendString(entry.Message)

	if len(fields) > 0 {
		buf.AppendString("\t")
		fieldMap := make(map[string]interface{}, len(fields))
		for _, field := range fields {
			fieldMap[field.Key] = fieldValue(field)
		}
		if jsonData, err := json.Marshal(fieldMap); err == nil {
			buf.AppendString(string(jsonData))
		}
	}

	buf.AppendString("\n")
	return buf, nil
}

func fieldValue(field zapcore.Field) interface{} {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type:
		return field.Integer
	case zapcore.BoolType:
		return field.Integer == 1
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
		return nil
	default:
		enc := zapcore.NewMapObjectEncoder()
		field.AddTo(enc)
		return enc.Fields[field.Key]
	}
}
