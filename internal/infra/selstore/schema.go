package selstore

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const (
	schemaVersion = 1

	rootBucketName       = "wunder_admin"
	metaBucketName       = "meta"
	selectionsBucketName = "tool_selections"
	versionKey           = "version"
)

func ensureSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists([]byte(rootBucketName))
		if err != nil {
			return fmt.Errorf("create root bucket: %w", err)
		}
		meta, err := root.CreateBucketIfNotExists([]byte(metaBucketName))
		if err != nil {
			return fmt.Errorf("create meta bucket: %w", err)
		}
		if _, err := root.CreateBucketIfNotExists([]byte(selectionsBucketName)); err != nil {
			return fmt.Errorf("create selections bucket: %w", err)
		}

		currentVersion := readSchemaVersion(meta)
		switch {
		case currentVersion == 0:
			return writeSchemaVersion(meta, schemaVersion)
		case currentVersion > schemaVersion:
			return fmt.Errorf("unsupported selection store schema version %d", currentVersion)
		default:
			return nil
		}
	})
}

func selectionsBucket(tx *bolt.Tx) *bolt.Bucket {
	root := tx.Bucket([]byte(rootBucketName))
	if root == nil {
		return nil
	}
	return root.Bucket([]byte(selectionsBucketName))
}

func readSchemaVersion(meta *bolt.Bucket) int {
	value := meta.Get([]byte(versionKey))
	if len(value) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(value))
}

func writeSchemaVersion(meta *bolt.Bucket, version int) error {
	var value [8]byte
	binary.BigEndian.PutUint64(value[:], uint64(version))
	return meta.Put([]byte(versionKey), value[:])
}
