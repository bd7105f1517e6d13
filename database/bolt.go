package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"
)

var settingsBucket = []byte("settings")

// BoltStore is a bbolt backed key/value store.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(dbPath string) (*BoltStore, error) {
	if dbPath == "" {
		dbPath = "huti.bolt"
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(settingsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create settings bucket: %w", err)
	}

	log.Infof("Bolt store initialized at %s", dbPath)
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(settingsBucket).Get([]byte(key))
		if v != nil {
			// v is only valid inside the transaction
			value = string(v)
			ok = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, ok, nil
}

func (s *BoltStore) Set(key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
