package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

func memStore(t *testing.T) *Store {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	s := New(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndList(t *testing.T) {
	s := memStore(t)

	second, err := s.Append(Record{StartedAt: 200, Workers: 4, Policy: "split", Samples: 1000, Hits: 790})
	require.NoError(t, err)
	first, err := s.Append(Record{ID: "first", StartedAt: 100, Workers: 32, Policy: "per-worker", Samples: 2000, Hits: 1571, Anomalies: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, second.ID)
	assert.Equal(t, "first", first.ID)

	records, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []Record{first, second}, records)
	assert.Equal(t, int64(100), records[0].Time().UnixNano())
}

func TestAppendAssignsStartTime(t *testing.T) {
	s := memStore(t)
	r, err := s.Append(Record{Samples: 1, Hits: 1})
	require.NoError(t, err)
	assert.NotZero(t, r.StartedAt)
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := memStore(t)
	_, err := s.Append(Record{Samples: 10, Hits: 11})
	require.Error(t, err)
	_, err = s.Append(Record{Samples: -1})
	require.Error(t, err)

	records, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSum(t *testing.T) {
	s := memStore(t)
	hits, samples, err := s.Sum()
	require.NoError(t, err)
	assert.Zero(t, hits)
	assert.Zero(t, samples)

	for _, r := range []Record{{Samples: 100, Hits: 80}, {Samples: 300, Hits: 230}, {Samples: 0}} {
		_, err := s.Append(r)
		require.NoError(t, err)
	}
	hits, samples, err = s.Sum()
	require.NoError(t, err)
	assert.Equal(t, int64(310), hits)
	assert.Equal(t, int64(400), samples)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Append(Record{Samples: 8, Hits: 6})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(6), records[0].Hits)
}

func TestPi(t *testing.T) {
	assert.Equal(t, "3.140000", Pi(785, 1000).FloatString(6))
	assert.Equal(t, "0.000000", Pi(0, 0).FloatString(6))
}
