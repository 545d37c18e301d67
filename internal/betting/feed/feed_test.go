package feed

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDefaultScriptLoads(t *testing.T) {
	f, err := New(DefaultScript)
	require.NoError(t, err)
	assert.Equal(t, 18, f.Len())
	assert.Equal(t, 0, f.Cursor())
	assert.False(t, f.Exhausted())
}

func TestMatch_ThreeWayRecordSkipsMiddle(t *testing.T) {
	f, err := New(DefaultScript)
	require.NoError(t, err)

	got := f.Match(0)
	require.Len(t, got, 2)
	assert.Equal(t, HomeTeam, got[0].Team)
	assert.True(t, d("2.40").Equal(got[0].Odds))
	assert.Equal(t, AwayTeam, got[1].Team)
	assert.True(t, d("1.60").Equal(got[1].Odds))

	r, ok := f.Record(0)
	require.True(t, ok)
	assert.True(t, r.HasDraw)
	assert.True(t, d("15.00").Equal(r.Draw))
}

func TestMatch_TwoWayRecord(t *testing.T) {
	f, err := New(DefaultScript)
	require.NoError(t, err)

	got := f.Match(16)
	require.Len(t, got, 2)
	assert.True(t, d("10.00").Equal(got[0].Odds))
	assert.True(t, d("1.01").Equal(got[1].Odds))

	r, _ := f.Record(16)
	assert.False(t, r.HasDraw)
	assert.True(t, r.Draw.IsZero())
}

func TestMatch_OutOfRangeIsEmpty(t *testing.T) {
	f, err := New(DefaultScript)
	require.NoError(t, err)
	assert.Empty(t, f.Match(18))
	assert.Empty(t, f.Match(1000))
	assert.Empty(t, f.Match(-1))
}

func TestAdvance_MonotonicPastEnd(t *testing.T) {
	f, err := New([][]string{{"2.0", "1.8"}, {"3.0", "4.0", "1.5"}})
	require.NoError(t, err)

	assert.Len(t, f.Current(), 2)
	assert.Equal(t, 1, f.Advance())
	assert.True(t, d("1.5").Equal(f.Current()[1].Odds))
	assert.Equal(t, 2, f.Advance())
	assert.True(t, f.Exhausted())
	assert.Empty(t, f.Current())
	assert.Equal(t, 3, f.Advance())
	assert.Empty(t, f.Current())
}

func TestNew_RejectsBadScripts(t *testing.T) {
	bad := map[string][][]string{
		"one value":    {{"2.0"}},
		"four values":  {{"2.0", "3.0", "4.0", "5.0"}},
		"not a number": {{"2.0", "x"}},
		"odds of one":  {{"1.00", "2.0"}},
		"below one":    {{"0.5", "2.0"}},
	}
	for name, script := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := New(script)
			assert.ErrorIs(t, err, ErrInvalidScript)
		})
	}
}

func TestNew_EmptyScriptIsExhausted(t *testing.T) {
	f, err := New(nil)
	require.NoError(t, err)
	assert.True(t, f.Exhausted())
	assert.Empty(t, f.Current())
}
