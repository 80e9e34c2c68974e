package bench

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treedict/pkg/errs"
)

func TestNewRunnerRejectsUnknownKind(t *testing.T) {
	_, err := NewRunner("avl", 32, t.TempDir(), 1)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestRunnerWritesCSV(t *testing.T) {
	for _, kind := range []Kind{BTreeKind, BPlusTreeKind} {
		t.Run(string(kind), func(t *testing.T) {
			out := t.TempDir()
			r, err := NewRunner(kind, 4, out, 1)
			require.NoError(t, err)

			require.NoError(t, r.LaunchInsertions(500))
			require.NoError(t, r.LaunchLookups(500))
			require.NoError(t, r.LaunchRemovals(500))

			for _, name := range []string{"insert.csv", "lookup.csv", "remove.csv"} {
				data, err := os.ReadFile(filepath.Join(out, string(kind), name))
				require.NoError(t, err)

				lines := strings.Split(strings.TrimSpace(string(data)), "\n")
				require.Len(t, lines, 11, "header plus ten size steps")
				assert.Equal(t, "count,time_us", lines[0])
				assert.True(t, strings.HasPrefix(lines[1], "50,"))
				assert.True(t, strings.HasPrefix(lines[10], "500,"))
			}
		})
	}
}

func TestUniqueSetIsAPermutation(t *testing.T) {
	r, err := NewRunner(BTreeKind, 4, t.TempDir(), 7)
	require.NoError(t, err)

	data := r.uniqueSet(100)
	seen := make(map[uint64]bool, len(data))
	for _, k := range data {
		seen[uint64(k)] = true
	}
	assert.Len(t, seen, 100)
	for i := uint64(0); i < 100; i++ {
		assert.True(t, seen[i])
	}
}
