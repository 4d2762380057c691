package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aanand-mishra/trackstudent/internal/config"
	"github.com/aanand-mishra/trackstudent/internal/storage"
	"github.com/aanand-mishra/trackstudent/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var created = time.Date(2024, 2, 10, 9, 30, 0, 0, time.Local)

func openTemp(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.db")
	db, err := New(&config.Config{StoragePath: path, StorageBackend: config.BackendSQLite})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestAddFindAndOrder(t *testing.T) {
	db, path := openTemp(t)

	want := []types.Student{
		types.NewStudent("STU20240210093002", "Zé", "ze@x.com", "Medicina", 30, created),
		types.NewStudent("STU20240210093000", "Ana", "ana@x.com", "ADS", 20, created),
		types.NewStudent("STU20240210093001", "Bruno", "bruno@x.com", "ADS", 21, created),
	}
	for _, s := range want {
		require.NoError(t, db.Add(s))
	}

	got, err := db.FindByID(" STU20240210093000 ")
	require.NoError(t, err)
	assert.Equal(t, want[1], got)

	// registration order, not id order
	all, err := db.All()
	require.NoError(t, err)
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("All mismatch (-want +got):\n%s", diff)
	}

	// survives reopening
	require.NoError(t, db.Close())
	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err = reopened.All()
	require.NoError(t, err)
	assert.Equal(t, want, all)
}

func TestAdd_Duplicate(t *testing.T) {
	db, _ := openTemp(t)
	s := types.NewStudent("STU20240210093000", "Ana", "ana@x.com", "ADS", 20, created)
	require.NoError(t, db.Add(s))

	err := db.Add(types.NewStudent(s.ID, "Other", "o@x.com", "Direito", 40, created))
	require.ErrorIs(t, err, storage.ErrDuplicate)

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFindByName(t *testing.T) {
	db, _ := openTemp(t)
	ana := types.NewStudent("STU20240210093000", "Ana", "ana@x.com", "ADS", 20, created)
	elio := types.NewStudent("STU20240210093001", "ÉLIO", "elio@x.com", "ADS", 20, created)
	require.NoError(t, db.Add(ana))
	require.NoError(t, db.Add(elio))

	got, err := db.FindByName("an")
	require.NoError(t, err)
	assert.Equal(t, []types.Student{ana}, got)

	got, err = db.FindByName("élio")
	require.NoError(t, err)
	assert.Equal(t, []types.Student{elio}, got)

	got, err = db.FindByName("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdate(t *testing.T) {
	db, _ := openTemp(t)
	s := types.NewStudent("STU20240210093000", "Ana", "ana@x.com", "ADS", 20, created)
	require.NoError(t, db.Add(s))

	updated, err := db.Update(s.ID, map[string]any{"age": 30, "id": "STU1", "unknown": true})
	require.NoError(t, err)

	want := s
	want.Age = 30
	assert.Equal(t, want, updated)

	got, err := db.FindByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = db.Update("STU00000000000000", map[string]any{"age": 30})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = db.Update(s.ID, map[string]any{"age": "old"})
	assert.ErrorIs(t, err, types.ErrInvalidChange)
}

func TestRemove(t *testing.T) {
	db, _ := openTemp(t)
	s := types.NewStudent("STU20240210093000", "Ana", "ana@x.com", "ADS", 20, created)
	require.NoError(t, db.Add(s))

	require.ErrorIs(t, db.Remove("STU00000000000000"), storage.ErrNotFound)
	n, _ := db.Count()
	assert.Equal(t, 1, n)

	require.NoError(t, db.Remove(s.ID))
	n, _ = db.Count()
	assert.Zero(t, n)

	_, err := db.FindByID(s.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
