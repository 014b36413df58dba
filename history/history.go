// Package history keeps a ledger of finished runs so that later runs can
// fold earlier results into one cumulative estimate. Only final aggregates
// are stored.
package history

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/ugorji/go/codec"
)

const runPrefix = "run/"

var cborHandle = &codec.CborHandle{}

// Record is one finished run.
type Record struct {
	ID        string `codec:"id"`
	StartedAt int64  `codec:"started_at"` // unix nanoseconds
	Workers   int    `codec:"workers"`
	Policy    string `codec:"policy"`
	Samples   int64  `codec:"samples"`
	Hits      int64  `codec:"hits"`
	Anomalies int    `codec:"anomalies"`
}

func (r Record) Time() time.Time {
	return time.Unix(0, r.StartedAt)
}

// Store is a LevelDB backed ledger. Keys sort by start time.
type Store struct {
	db *leveldb.DB
}

// Open opens or creates the ledger at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open history at %s", path)
	}
	return &Store{db: db}, nil
}

// New wraps an already open database.
func New(db *leveldb.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func recordKey(r Record) []byte {
	return []byte(fmt.Sprintf("%s%020d/%s", runPrefix, r.StartedAt, r.ID))
}

// Append stores r, giving it an ID and start time if it has none.
func (s *Store) Append(r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.StartedAt == 0 {
		r.StartedAt = time.Now().UnixNano()
	}
	if r.Samples < 0 || r.Hits < 0 || r.Hits > r.Samples {
		return Record{}, errors.Errorf("invalid record: %d hits out of %d samples", r.Hits, r.Samples)
	}

	var buf []byte
	if err := codec.NewEncoderBytes(&buf, cborHandle).Encode(r); err != nil {
		return Record{}, errors.Wrap(err, "failed to encode record")
	}
	if err := s.db.Put(recordKey(r), buf, nil); err != nil {
		return Record{}, errors.Wrap(err, "failed to store record")
	}
	return r, nil
}

// List returns every record, oldest first.
func (s *Store) List() ([]Record, error) {
	var records []Record

	iter := s.db.NewIterator(util.BytesPrefix([]byte(runPrefix)), nil)
	defer iter.Release()

	for iter.Next() {
		var r Record
		if err := codec.NewDecoderBytes(iter.Value(), cborHandle).Decode(&r); err != nil {
			return nil, errors.Wrapf(err, "failed to decode record %q", iter.Key())
		}
		records = append(records, r)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "iterator error")
	}
	return records, nil
}

// Sum adds up hits and samples over every stored run.
func (s *Store) Sum() (hits int64, samples int64, err error) {
	records, err := s.List()
	if err != nil {
		return 0, 0, err
	}
	for _, r := range records {
		hits += r.Hits
		samples += r.Samples
	}
	return hits, samples, nil
}

// Pi is the exact ratio 4 * hits / samples. A zero sample count is treated
// as one so the result is always defined.
func Pi(hits int64, samples int64) *big.Rat {
	if samples <= 0 {
		samples = 1
	}
	pi := big.NewRat(hits, samples)
	pi.Mul(pi, big.NewRat(4, 1))
	return pi
}
