package resolver

import (
	"context"
	"testing"

	"tweetgen/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns k.
type fixedSource int

func (k fixedSource) IntN(int) int { return int(k) }

// recordingSource returns successive values and records each bound.
type recordingSource struct {
	values []int
	bounds []int
}

func (s *recordingSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

func TestLocal_FixedSourceReturnsThatCandidate(t *testing.T) {
	ctx := context.Background()
	for _, c := range catalog.Default().List() {
		for k := range c.Candidates {
			r := NewLocal(catalog.Default(), WithRandSource(fixedSource(k)))
			got, err := r.Resolve(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, c.Candidates[k], got, "category %s index %d", c.ID, k)
		}
	}
}

func TestLocal_DrawsOverWholeCandidateSet(t *testing.T) {
	src := &recordingSource{values: []int{2, 0, 2}}
	r := NewLocal(catalog.Default(), WithRandSource(src))

	humor, err := catalog.Default().Find(catalog.Humor)
	require.NoError(t, err)

	for _, want := range []int{2, 0, 2} {
		got, err := r.Resolve(context.Background(), catalog.Humor)
		require.NoError(t, err)
		assert.Equal(t, humor.Candidates[want], got)
	}
	// Each call draws from the full range; nothing is excluded or memoized.
	assert.Equal(t, []int{3, 3, 3}, src.bounds)
}

func TestLocal_EmptyCandidateSet(t *testing.T) {
	cat := catalog.MustNew(catalog.Category{ID: "drafts", DisplayName: "Drafts"})
	src := &recordingSource{}
	r := NewLocal(cat, WithRandSource(src))

	got, err := r.Resolve(context.Background(), "drafts")
	require.ErrorIs(t, err, ErrEmptyCandidateSet)
	assert.Empty(t, got)
	assert.Empty(t, src.bounds, "random source must not be consulted")

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "drafts", re.Category)
}

func TestLocal_CategoryNotFound(t *testing.T) {
	r := NewLocal(catalog.Default(), WithRandSource(fixedSource(0)))

	got, err := r.Resolve(context.Background(), "cooking")
	require.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Empty(t, got)
	assert.Equal(t, ErrCategoryNotFound, KindOf(err))
}

func TestLocal_OutOfRangeSourceIsClamped(t *testing.T) {
	r := NewLocal(catalog.Default(), WithRandSource(fixedSource(-1)))
	tech, _ := catalog.Default().Find(catalog.Tech)

	got, err := r.Resolve(context.Background(), catalog.Tech)
	require.NoError(t, err)
	assert.Equal(t, tech.Candidates[2], got)
}

func TestLocal_DefaultSourceStaysInRange(t *testing.T) {
	r := NewLocal(catalog.Default())
	business, _ := catalog.Default().Find(catalog.Business)

	for i := 0; i < 200; i++ {
		got, err := r.Resolve(context.Background(), catalog.Business)
		require.NoError(t, err)
		assert.Contains(t, business.Candidates, got)
	}
}
