package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const receiptsFile = "receipts.json"

// Receipt records one successful airdrop claim. Receipts are written
// after the fact and never consulted before a call.
type Receipt struct {
	Address   string `json:"address"`
	Amount    int    `json:"amount"`
	ClaimedAt int64  `json:"claimed_at"`
}

// Store persists claim receipts as a JSON file in a data directory
type Store struct {
	dir string
}

// DefaultDir returns the application data directory
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".kalp-airdrop"), nil
}

// NewStore creates a store rooted at the given directory
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) receiptsPath() string {
	return filepath.Join(s.dir, receiptsFile)
}

// Load reads all recorded receipts. A missing file means no receipts.
func (s *Store) Load() ([]Receipt, error) {
	filePath := s.receiptsPath()

	if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
		return nil, nil
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipts file: %w", err)
	}

	var receipts []Receipt
	if err := json.Unmarshal(fileData, &receipts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal receipts: %w", err)
	}

	return receipts, nil
}

// Append records one receipt
func (s *Store) Append(receipt Receipt) error {
	receipts, err := s.Load()
	if err != nil {
		return err
	}

	receipts = append(receipts, receipt)

	jsonData, err := json.Marshal(receipts)
	if err != nil {
		return fmt.Errorf("failed to marshal receipts: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(s.receiptsPath(), jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write receipts file: %w", err)
	}

	return nil
}

// RecordClaim appends a receipt for a claim that just succeeded
func (s *Store) RecordClaim(address string, amount int) error {
	return s.Append(Receipt{
		Address:   address,
		Amount:    amount,
		ClaimedAt: time.Now().Unix(),
	})
}
