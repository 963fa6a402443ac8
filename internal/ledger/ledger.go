package ledger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"go.uber.org/zap"
)

type Action string

const (
	ActionCreated  Action = "created"
	ActionApproved Action = "approved"
	ActionRejected Action = "rejected"
)

// Entry is one line of the purchase ledger
type Entry struct {
	PurchaseID  string    `json:"purchaseId"`
	Action      Action    `json:"action"`
	ActorID     string    `json:"actorId"`
	TotalAmount float64   `json:"totalAmount,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Ledger is an append-only JSON-lines file recording every coffee purchase
// state change. Entries are synced to disk before Append returns.
type Ledger struct {
	filePath string
	file     *os.File
	mu       sync.Mutex
}

func Open(filePath string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &Ledger{
		filePath: filePath,
		file:     file,
	}, nil
}

func (l *Ledger) Append(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	if _, err := l.file.Write(data); err != nil {
		logger.Log.Error("Ledger: failed to write entry",
			zap.String("purchase_id", entry.PurchaseID),
			zap.Error(err),
		)
		return err
	}
	if err := l.file.Sync(); err != nil {
		logger.Log.Error("Ledger: failed to sync to disk",
			zap.String("purchase_id", entry.PurchaseID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Debug("Ledger: entry appended",
		zap.String("purchase_id", entry.PurchaseID),
		zap.String("action", string(entry.Action)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// ReadAll returns every entry in write order
func (l *Ledger) ReadAll() ([]Entry, error) {
	return l.read(func(Entry) bool { return true })
}

// ForPurchase returns the history of one purchase in write order
func (l *Ledger) ForPurchase(purchaseID string) ([]Entry, error) {
	return l.read(func(e Entry) bool { return e.PurchaseID == purchaseID })
}

func (l *Ledger) read(keep func(Entry) bool) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	entries := make([]Entry, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			// a torn last line from a crash mid-write is skipped
			continue
		}
		if keep(entry) {
			entries = append(entries, entry)
		}
	}

	return entries, scanner.Err()
}

func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
