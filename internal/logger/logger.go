package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger represents the application logger
type Logger struct {
	*logrus.Logger
	config LogConfig
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level       string
	Format      string // "json" or "text"
	LogToFile   bool
	LogFilePath string
	JournalDir  string
}

// NewLogger creates a new logger instance
func NewLogger(config LogConfig) (*Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", config.Level, err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	switch strings.ToLower(config.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			DisableQuote:    true,
		})
	default:
		log.SetFormatter(&CustomFormatter{})
	}

	if config.JournalDir != "" {
		if err := os.MkdirAll(config.JournalDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", config.JournalDir, err)
		}
	}

	if config.LogToFile && config.LogFilePath != "" {
		logDir := filepath.Dir(config.LogFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}

		file, err := os.OpenFile(config.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.LogFilePath, err)
		}
		log.SetOutput(io.MultiWriter(os.Stdout, file))
	}

	return &Logger{
		Logger: log,
		config: config,
	}, nil
}

// CustomFormatter provides a clean, timestamped format for console output
type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	level := strings.ToUpper(entry.Level.String())

	var levelColor string
	switch entry.Level {
	case logrus.DebugLevel:
		levelColor = "\033[36m" // Cyan
	case logrus.InfoLevel:
		levelColor = "\033[32m" // Green
	case logrus.WarnLevel:
		levelColor = "\033[33m" // Yellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = "\033[31m" // Red
	default:
		levelColor = "\033[0m"
	}

	resetColor := "\033[0m"

	msg := fmt.Sprintf("%s [%s%s%s] %s",
		timestamp,
		levelColor,
		level,
		resetColor,
		entry.Message)

	if len(entry.Data) > 0 {
		msg += " |"
		for key, value := range entry.Data {
			msg += fmt.Sprintf(" %s=%v", key, value)
		}
	}

	msg += "\n"
	return []byte(msg), nil
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.Logger.WithField(key, value)
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.Logger.WithFields(fields)
}

// WithError adds an error field to the logger
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.Logger.WithError(err)
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.WithField("component", component)
}

// WithTransaction returns a logger with transaction context
func (l *Logger) WithTransaction(signature string) *logrus.Entry {
	return l.WithField("transaction", signature)
}

// Domain event logging

// LogWalletReady logs a materialized signing identity
func (l *Logger) LogWalletReady(publicKey, path, origin string) {
	l.WithFields(logrus.Fields{
		"event":      "wallet_ready",
		"public_key": publicKey,
		"path":       path,
		"origin":     origin, // "generated", "mnemonic", "seed", "private_key"
	}).Info("🔑 Wallet ready")
}

// LogTransferSent logs a value transfer submission
func (l *Logger) LogTransferSent(signature, from, to string, lamports uint64) {
	l.WithFields(logrus.Fields{
		"event":     "transfer_sent",
		"signature": signature,
		"from":      from,
		"to":        to,
		"lamports":  lamports,
	}).Info("💸 Transfer sent")
}

// LogMintCreated logs a new token mint
func (l *Logger) LogMintCreated(mint, authority, signature string, decimals uint8) {
	l.WithFields(logrus.Fields{
		"event":     "mint_created",
		"mint":      mint,
		"authority": authority,
		"decimals":  decimals,
		"signature": signature,
	}).Info("🪙 Token mint created")
}

// LogTokenOperation logs a mint/burn/transfer/approve style token operation
func (l *Logger) LogTokenOperation(op, mint, signature string, amount uint64) {
	l.WithFields(logrus.Fields{
		"event":     "token_" + op,
		"mint":      mint,
		"amount":    amount,
		"signature": signature,
	}).Info("📋 Token operation confirmed")
}

// LogStakeOperation logs a stake account lifecycle operation
func (l *Logger) LogStakeOperation(op, stakeAccount, signature string) {
	l.WithFields(logrus.Fields{
		"event":         "stake_" + op,
		"stake_account": stakeAccount,
		"signature":     signature,
	}).Info("🥩 Stake operation confirmed")
}

// LogUploadComplete logs a storage upload
func (l *Logger) LogUploadComplete(cid, uri string, size int64) {
	l.WithFields(logrus.Fields{
		"event": "upload_complete",
		"cid":   cid,
		"uri":   uri,
		"size":  size,
	}).Info("📦 Upload complete")
}

// LogNFTMinted logs a completed NFT mint
func (l *Logger) LogNFTMinted(name, mint, metadataURI, signature string) {
	l.WithFields(logrus.Fields{
		"event":        "nft_minted",
		"name":         name,
		"mint":         mint,
		"metadata_uri": metadataURI,
		"signature":    signature,
	}).Info("🖼️ NFT minted")
}

// LogError logs general errors with context
func (l *Logger) LogError(component, operation string, err error, fields logrus.Fields) {
	logFields := logrus.Fields{
		"event":     "error",
		"component": component,
		"operation": operation,
	}
	for k, v := range fields {
		logFields[k] = v
	}

	l.WithFields(logFields).WithError(err).Error("💥 Component error")
}

// LogStartup logs application startup information
func (l *Logger) LogStartup(version, network, rpcUrl string) {
	l.WithFields(logrus.Fields{
		"event":   "startup",
		"version": version,
		"network": network,
		"rpc_url": rpcUrl,
	}).Info("🚀 Toolkit starting up")
}

// LogShutdown logs application shutdown information
func (l *Logger) LogShutdown(reason string) {
	l.WithFields(logrus.Fields{
		"event":  "shutdown",
		"reason": reason,
	}).Info("🛑 Toolkit shutting down")
}
