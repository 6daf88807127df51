// Package archive keeps generated layouts in a bbolt file keyed by seed,
// so a layout can be shown again without regenerating it.
package archive

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"gallerymaze/pkg/game/generator"
)

var (
	// ErrNotFound is returned by Load when no layout was stored for the seed
	ErrNotFound = errors.New("layout not found in archive")
	// ErrFailedLayout is returned by Save for unsuccessful results
	ErrFailedLayout = errors.New("only successful layouts are archived")
	// ErrUnseeded is returned by Save for results without a positive seed,
	// such as those from a generator with an injected source and no Config.Seed
	ErrUnseeded = errors.New("only layouts with a positive seed are archived")
)

var bucketLayouts = []byte("layouts")

// Archive is an open layout store
type Archive struct {
	db *bolt.DB
}

// Open opens or creates the archive file at path
func Open(path string) (*Archive, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLayouts)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare archive %s: %w", path, err)
	}
	return &Archive{db: db}, nil
}

// Close releases the archive file
func (a *Archive) Close() error {
	return a.db.Close()
}

func seedKey(seed int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(seed))
	return key
}

// Save stores a successful result under its seed, replacing any earlier layout.
// Seeds must be positive so that key order is numeric order.
func (a *Archive) Save(res *generator.Result) error {
	if res == nil || !res.Success {
		return ErrFailedLayout
	}
	if res.Seed <= 0 {
		return fmt.Errorf("%w: seed %d", ErrUnseeded, res.Seed)
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLayouts).Put(seedKey(res.Seed), data)
	})
}

// Load returns the layout stored for seed. A miss lists the seeds that are archived.
func (a *Archive) Load(seed int64) (*generator.Result, error) {
	var res *generator.Result
	err := a.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketLayouts).Get(seedKey(seed))
		if data == nil {
			seeds, err := seedsIn(tx)
			if err != nil {
				return err
			}
			return fmt.Errorf("%w: seed %d (archived: %s)", ErrNotFound, seed, formatSeeds(seeds))
		}
		res = &generator.Result{}
		return json.Unmarshal(data, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Seeds lists the stored seeds in ascending order
func (a *Archive) Seeds() ([]int64, error) {
	var seeds []int64
	err := a.db.View(func(tx *bolt.Tx) error {
		var err error
		seeds, err = seedsIn(tx)
		return err
	})
	return seeds, err
}

func seedsIn(tx *bolt.Tx) ([]int64, error) {
	var seeds []int64
	err := tx.Bucket(bucketLayouts).ForEach(func(k, _ []byte) error {
		seeds = append(seeds, int64(binary.BigEndian.Uint64(k)))
		return nil
	})
	return seeds, err
}

func formatSeeds(seeds []int64) string {
	if len(seeds) == 0 {
		return "none"
	}
	parts := make([]string, len(seeds))
	for i, s := range seeds {
		parts[i] = strconv.FormatInt(s, 10)
	}
	return strings.Join(parts, ", ")
}
