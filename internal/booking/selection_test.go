package booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures emitted signals for assertions.
type recorder struct {
	events []string
}

func (r *recorder) CalendarViewed() { r.events = append(r.events, "viewed") }

func (r *recorder) CalendarNavigated(dir string) { r.events = append(r.events, "nav:"+dir) }

func (r *recorder) BlockedDateClicked(d Date) { r.events = append(r.events, "blocked:"+d.String()) }
func (r *recorder) SelectionCompleted(s, e Date) {
	r.events = append(r.events, fmt.Sprintf("completed:%s/%s", s, e))
}

func TestClickArmsAnchor(t *testing.T) {
	today := mustDate(t, "2025-06-01")
	sel := NewSelection(nil)

	require.NoError(t, sel.Click(mustDate(t, "2025-06-03"), nil, today))

	anchor, ok := sel.Anchor()
	require.True(t, ok)
	assert.Equal(t, "2025-06-03", anchor.String())
	_, ok = sel.Cursor()
	assert.False(t, ok)
	assert.Equal(t, AwaitingEnd, sel.Mode())
}

func TestClickRejectsBookedAndSignals(t *testing.T) {
	today := mustDate(t, "2025-03-01")
	ranges := []Range{mustRange(t, "2025-03-10", "2025-03-15")}
	rec := &recorder{}
	sel := NewSelection(rec)

	err := sel.Click(mustDate(t, "2025-03-12"), ranges, today)
	assert.ErrorIs(t, err, ErrDateBooked)
	assert.Equal(t, []string{"blocked:2025-03-12"}, rec.events)
	assert.Equal(t, AwaitingStart, sel.Mode())
}

func TestClickRejectsPastSilently(t *testing.T) {
	today := mustDate(t, "2025-03-10")
	rec := &recorder{}
	sel := NewSelection(rec)

	err := sel.Click(mustDate(t, "2025-03-09"), nil, today)
	assert.ErrorIs(t, err, ErrDatePast)
	assert.Empty(t, rec.events)
}

func TestSwapLaw(t *testing.T) {
	today := mustDate(t, "2025-07-01")

	commit := func(first, second string) (string, string) {
		sel := NewSelection(nil)
		require.NoError(t, sel.Click(mustDate(t, first), nil, today))
		require.NoError(t, sel.Click(mustDate(t, second), nil, today))
		a, _ := sel.Anchor()
		c, _ := sel.Cursor()
		return a.String(), c.String()
	}

	// Clicking out of order yields the same committed range as sorted order.
	a1, c1 := commit("2025-07-10", "2025-07-05")
	a2, c2 := commit("2025-07-05", "2025-07-10")
	assert.Equal(t, "2025-07-05", a1)
	assert.Equal(t, "2025-07-10", c1)
	assert.Equal(t, a2, a1)
	assert.Equal(t, c2, c1)
}

func TestSwapEmitsCompletedInSwappedOrder(t *testing.T) {
	today := mustDate(t, "2025-07-01")
	rec := &recorder{}
	sel := NewSelection(rec)

	require.NoError(t, sel.Click(mustDate(t, "2025-07-10"), nil, today))
	require.NoError(t, sel.Click(mustDate(t, "2025-07-05"), nil, today))

	assert.Equal(t, []string{"completed:2025-07-05/2025-07-10"}, rec.events)
	assert.Equal(t, AwaitingStart, sel.Mode(), "complete pair re-arms the machine")
}

func TestBookedCollisionRestartsAnchor(t *testing.T) {
	today := mustDate(t, "2025-09-01")
	ranges := []Range{mustRange(t, "2025-09-10", "2025-09-12")}
	rec := &recorder{}
	sel := NewSelection(rec)

	require.NoError(t, sel.Click(mustDate(t, "2025-09-08"), ranges, today))
	err := sel.Click(mustDate(t, "2025-09-14"), ranges, today)
	assert.ErrorIs(t, err, ErrRangeUnavailable)

	// Second click became the fresh anchor; the machine never completed.
	anchor, ok := sel.Anchor()
	require.True(t, ok)
	assert.Equal(t, "2025-09-14", anchor.String())
	assert.False(t, sel.Complete())
	assert.NotContains(t, rec.events, "completed:2025-09-08/2025-09-14")
}

func TestClearRoundTrip(t *testing.T) {
	today := mustDate(t, "2025-06-01")
	sel := NewSelection(nil)

	require.NoError(t, sel.Click(mustDate(t, "2025-06-01"), nil, today))
	require.NoError(t, sel.Click(mustDate(t, "2025-06-05"), nil, today))
	require.True(t, sel.Complete())

	sel.Clear()
	_, hasAnchor := sel.Anchor()
	_, hasCursor := sel.Cursor()
	assert.False(t, hasAnchor)
	assert.False(t, hasCursor)
	assert.Equal(t, AwaitingStart, sel.Mode())

	require.NoError(t, sel.Click(mustDate(t, "2025-06-03"), nil, today))
	anchor, ok := sel.Anchor()
	require.True(t, ok)
	assert.Equal(t, "2025-06-03", anchor.String())
	assert.Equal(t, AwaitingEnd, sel.Mode())
}

func TestClickAfterCompleteReArms(t *testing.T) {
	today := mustDate(t, "2025-06-01")
	sel := NewSelection(nil)

	require.NoError(t, sel.Click(mustDate(t, "2025-06-02"), nil, today))
	require.NoError(t, sel.Click(mustDate(t, "2025-06-06"), nil, today))
	require.NoError(t, sel.Click(mustDate(t, "2025-06-20"), nil, today))

	anchor, ok := sel.Anchor()
	require.True(t, ok)
	assert.Equal(t, "2025-06-20", anchor.String())
	_, hasCursor := sel.Cursor()
	assert.False(t, hasCursor)
}

func TestSetValueDerivesMode(t *testing.T) {
	start := mustDate(t, "2025-06-01")
	end := mustDate(t, "2025-06-05")

	tests := []struct {
		name       string
		start, end *Date
		want       Mode
	}{
		{"both nil", nil, nil, AwaitingStart},
		{"start only", &start, nil, AwaitingEnd},
		{"both set", &start, &end, AwaitingStart},
		{"end only", nil, &end, AwaitingStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection(nil)
			sel.SetValue(tt.start, tt.end)
			assert.Equal(t, tt.want, sel.Mode())
		})
	}
}

func TestSetValueBypassesValidation(t *testing.T) {
	// Host-controlled updates are trusted even over booked dates.
	sel := NewSelection(nil)
	start := mustDate(t, "2025-03-10")
	end := mustDate(t, "2025-03-20")
	sel.SetValue(&start, &end)
	assert.True(t, sel.Complete())
}
