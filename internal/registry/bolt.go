package registry

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/ytget/map-downloader/internal/model"
)

const pendingBucket = "pending_downloads"

// Bolt is a Registry persisted in a bolt database file
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the registry database at path
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(pendingBucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", pendingBucket, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Add stores rec under its id, replacing a record with the same id
func (r *Bolt) Add(rec model.PendingDownload) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal pending download: %w", err)
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pendingBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", pendingBucket)
		}
		if err := bucket.Put(idKey(rec.ID), data); err != nil {
			return fmt.Errorf("failed to save pending download %d: %w", rec.ID, err)
		}
		return nil
	})
}

// Get returns the record with id
func (r *Bolt) Get(id int64) (model.PendingDownload, error) {
	var rec model.PendingDownload

	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pendingBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", pendingBucket)
		}
		data := bucket.Get(idKey(id))
		if data == nil {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return json.Unmarshal(data, &rec)
	})

	return rec, err
}

// Remove deletes the record with id
func (r *Bolt) Remove(id int64) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pendingBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", pendingBucket)
		}
		if bucket.Get(idKey(id)) == nil {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return bucket.Delete(idKey(id))
	})
}

// All returns every record ordered by id
func (r *Bolt) All() ([]model.PendingDownload, error) {
	var records []model.PendingDownload

	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pendingBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", pendingBucket)
		}
		return bucket.ForEach(func(_, v []byte) error {
			var rec model.PendingDownload
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal pending download: %w", err)
			}
			records = append(records, rec)
			return nil
		})
	})

	return records, err
}

// Close closes the database
func (r *Bolt) Close() error {
	return r.db.Close()
}

// idKey encodes ids big-endian so bolt's byte order matches numeric order
// for non-negative ids.
func idKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}
