package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/jirani-app/app-jirani/internal/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Action     string             `bson:"action" json:"action"`
	Resource   string             `bson:"resource" json:"resource"`
	ResourceID string             `bson:"resource_id" json:"resource_id"`
	OldValue   interface{}        `bson:"old_value,omitempty" json:"old_value,omitempty"`
	NewValue   interface{}        `bson:"new_value,omitempty" json:"new_value,omitempty"`
	IPAddress  string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata   map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Audit constants
const (
	AuditActionSignUp  = "SIGN_UP"
	AuditActionSignIn  = "SIGN_IN"
	AuditActionSignOut = "SIGN_OUT"
	AuditActionUpdate  = "UPDATE"

	// AuditActionRejected marks a write request refused with a 4xx status
	AuditActionRejected = "REJECTED"

	AuditResourceAccount = "account"
	AuditResourceSession = "session"
	AuditResourceProfile = "profile"
)

// AuditContext contains context information for audit logging
type AuditContext struct {
	UserID    string
	Email     string
	IPAddress string
	UserAgent string
	RequestID string
}

// AuditStore persists audit log entries.
type AuditStore interface {
	InsertAuditLogs(ctx context.Context, logs []AuditLog) error
}

// MongoAuditStore writes audit logs to a MongoDB collection.
type MongoAuditStore struct {
	collection *mongo.Collection
}

// NewMongoAuditStore creates an audit store backed by collection
func NewMongoAuditStore(collection *mongo.Collection) *MongoAuditStore {
	return &MongoAuditStore{collection: collection}
}

// InsertAuditLogs bulk inserts logs without ordering guarantees
func (s *MongoAuditStore) InsertAuditLogs(ctx context.Context, logs []AuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	operations := make([]mongo.WriteModel, 0, len(logs))
	for _, log := range logs {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(log))
	}

	_, err := s.collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	return err
}

// AuditWorker manages asynchronous audit logging
type AuditWorker struct {
	auditChan     chan AuditLog
	store         AuditStore
	workers       int
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
	stopOnce      sync.Once
}

var (
	auditWorker *AuditWorker
	once        sync.Once
)

// NewAuditWorker creates and starts an audit worker pool writing to store
func NewAuditWorker(store AuditStore, workers int, bufferSize int) *AuditWorker {
	if workers < 1 {
		workers = 1
	}
	if bufferSize < 0 {
		bufferSize = 0
	}

	aw := &AuditWorker{
		auditChan:     make(chan AuditLog, bufferSize),
		store:         store,
		workers:       workers,
		batchSize:     100,
		flushInterval: 100 * time.Millisecond,
	}
	aw.start()
	return aw
}

// InitAuditWorker initializes the global audit worker
func InitAuditWorker(store AuditStore, workers int, bufferSize int) {
	once.Do(func() {
		auditWorker = NewAuditWorker(store, workers, bufferSize)
	})
}

// GetAuditWorker returns the global audit worker instance
func GetAuditWorker() *AuditWorker {
	return auditWorker
}

// start starts the audit worker pool
func (aw *AuditWorker) start() {
	aw.wg.Add(aw.workers)
	for i := 0; i < aw.workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processAuditLogs()
		}()
	}

	logging.Logger.Info("audit worker started",
		zap.Int("workers", aw.workers),
		zap.Int("buffer_size", cap(aw.auditChan)))
}

// processAuditLogs drains the channel in batches
func (aw *AuditWorker) processAuditLogs() {
	ticker := time.NewTicker(aw.flushInterval)
	defer ticker.Stop()

	var batch []AuditLog

	for {
		select {
		case auditLog, ok := <-aw.auditChan:
			if !ok {
				aw.flushBatch(batch)
				return
			}
			batch = append(batch, auditLog)
			if len(batch) >= aw.batchSize {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// flushBatch writes a batch of audit logs to the store
func (aw *AuditWorker) flushBatch(batch []AuditLog) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := aw.store.InsertAuditLogs(ctx, batch); err != nil {
		logging.Logger.Error("failed to insert audit log batch",
			zap.Error(err),
			zap.Int("batch_size", len(batch)))
		return
	}

	logging.Logger.Debug("audit log batch inserted", zap.Int("batch_size", len(batch)))
}

// Enqueue hands log to the worker pool. When the buffer is full the entry
// is written synchronously.
func (aw *AuditWorker) Enqueue(ctx context.Context, log AuditLog) error {
	select {
	case aw.auditChan <- log:
		return nil
	default:
		logging.Logger.Warn("audit channel full, falling back to synchronous logging",
			zap.String("action", log.Action),
			zap.String("user_id", log.UserID))
		if err := aw.store.InsertAuditLogs(ctx, []AuditLog{log}); err != nil {
			return fmt.Errorf("failed to insert audit log: %w", err)
		}
		return nil
	}
}

// Stop flushes pending entries and stops the workers
func (aw *AuditWorker) Stop() {
	if aw == nil {
		return
	}
	aw.stopOnce.Do(func() {
		close(aw.auditChan)
		aw.wg.Wait()
	})
}

// LogAuditEvent records an audit event through the global worker
func LogAuditEvent(ctx context.Context, auditCtx AuditContext, action, resource, resourceID string, oldValue, newValue interface{}, metadata map[string]string) error {
	if config.AppConfig != nil && !config.AppConfig.AuditLogsEnabled {
		return nil
	}

	if auditWorker == nil {
		logging.Logger.Debug("audit worker not initialized, dropping event",
			zap.String("action", action),
			zap.String("resource", resource))
		return nil
	}

	return auditWorker.Enqueue(ctx, AuditLog{
		UserID:     auditCtx.UserID,
		Email:      auditCtx.Email,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   oldValue,
		NewValue:   newValue,
		IPAddress:  auditCtx.IPAddress,
		UserAgent:  auditCtx.UserAgent,
		RequestID:  auditCtx.RequestID,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	})
}

// LogSignUp logs an account creation
func LogSignUp(ctx context.Context, auditCtx AuditContext, method string) error {
	return LogAuditEvent(ctx, auditCtx, AuditActionSignUp, AuditResourceAccount, auditCtx.UserID, nil, nil,
		map[string]string{"method": method})
}

// LogSignIn logs a successful sign-in
func LogSignIn(ctx context.Context, auditCtx AuditContext, method string) error {
	return LogAuditEvent(ctx, auditCtx, AuditActionSignIn, AuditResourceSession, auditCtx.UserID, nil, nil,
		map[string]string{"method": method})
}

// LogSignOut logs a session revocation
func LogSignOut(ctx context.Context, auditCtx AuditContext, sessionID string) error {
	return LogAuditEvent(ctx, auditCtx, AuditActionSignOut, AuditResourceSession, sessionID, nil, nil, nil)
}

// LogProfileUpdate logs a change to one profile field. Values should already be masked.
func LogProfileUpdate(ctx context.Context, auditCtx AuditContext, field string, oldValue, newValue interface{}) error {
	metadata := map[string]string{
		"operation": "profile_update",
		"field":     field,
	}
	return LogAuditEvent(ctx, auditCtx, AuditActionUpdate, AuditResourceProfile, auditCtx.UserID, oldValue, newValue, metadata)
}

// GetAuditContextFromGin extracts audit context from Gin context
func GetAuditContextFromGin(c *gin.Context) AuditContext {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}

	return AuditContext{
		UserID:    c.GetString("user_id"),
		Email:     c.GetString("user_email"),
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: requestID,
	}
}
