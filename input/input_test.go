package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpEdgeTriggering(t *testing.T) {
	kb := NewScriptedKeyboard(
		[]Key{KeyJump},
		[]Key{KeyJump},
		[]Key{KeyJump},
		nil,
		[]Key{KeyJump},
	)

	var st State
	var edges []int
	for frame := 1; !kb.Done(); frame++ {
		snap := st.Sample(kb)
		if snap.JumpEdge() {
			edges = append(edges, frame)
		}
		st.Persist(snap)
		kb.Advance()
	}

	assert.Equal(t, []int{1, 5}, edges)
}

func TestPersistHappensOnlyWhenCalled(t *testing.T) {
	kb := NewScriptedKeyboard([]Key{KeyJump}, []Key{KeyJump})
	var st State

	first := st.Sample(kb)
	require.True(t, first.JumpEdge())

	// Sampling again without persisting still sees the old previous state.
	again := st.Sample(kb)
	assert.True(t, again.JumpEdge())
	assert.False(t, again.JumpPrev)

	st.Persist(first)
	kb.Advance()
	held := st.Sample(kb)
	assert.True(t, held.Jump)
	assert.True(t, held.JumpPrev)
	assert.False(t, held.JumpEdge())
}

func TestSampleAxis(t *testing.T) {
	cases := []struct {
		name string
		keys []Key
		axis int
	}{
		{"none", nil, 0},
		{"left", []Key{KeyLeft}, -1},
		{"right", []Key{KeyRight}, 1},
		{"both_cancel", []Key{KeyLeft, KeyRight}, 0},
		{"right_and_jump", []Key{KeyRight, KeyJump}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var st State
			snap := st.Sample(NewScriptedKeyboard(c.keys))
			assert.Equal(t, c.axis, snap.Axis)
		})
	}
}

func TestSampleNilKeyboard(t *testing.T) {
	st := State{prevJump: true}
	snap := st.Sample(nil)
	assert.Equal(t, Snapshot{JumpPrev: true}, snap)
}

func TestParseScript(t *testing.T) {
	kb, err := ParseScript("R*2 rj . J*1")
	require.NoError(t, err)
	require.Equal(t, 5, kb.Len())

	expect := []struct {
		right, left, jump bool
	}{
		{right: true},
		{right: true},
		{right: true, jump: true},
		{},
		{jump: true},
	}
	for i, e := range expect {
		assert.Equal(t, i, kb.Frame())
		assert.Equal(t, e.right, kb.Pressed(KeyRight), "frame %d right", i)
		assert.Equal(t, e.left, kb.Pressed(KeyLeft), "frame %d left", i)
		assert.Equal(t, e.jump, kb.Pressed(KeyJump), "frame %d jump", i)
		kb.Advance()
	}
	assert.True(t, kb.Done())
	assert.False(t, kb.Pressed(KeyRight))
}

func TestScriptLimit(t *testing.T) {
	kb, err := ParseScript("R*3")
	require.NoError(t, err)

	kb.Limit(5)
	assert.Equal(t, 5, kb.Len())
	kb.Limit(2)
	assert.Equal(t, 2, kb.Len())
	assert.True(t, kb.Pressed(KeyRight))
}

func TestParseScriptErrors(t *testing.T) {
	for _, script := range []string{"X", "R*0", "R*", "J*two"} {
		t.Run(script, func(t *testing.T) {
			_, err := ParseScript(script)
			assert.Error(t, err)
		})
	}
}

func TestQueueDrains(t *testing.T) {
	var q Queue
	assert.Nil(t, q.Poll())

	q.Push(KeyDown(KeyEscape), Resize(640, 480))
	q.Push(Quit())
	got := q.Poll()
	assert.Equal(t, []Event{
		{Kind: EventKeyDown, Key: KeyEscape},
		{Kind: EventResize, Width: 640, Height: 480},
		{Kind: EventQuit},
	}, got)
	assert.Nil(t, q.Poll())
}

func TestScriptedKeyboardAsEventSource(t *testing.T) {
	kb, err := ParseScript("R J")
	require.NoError(t, err)

	assert.Empty(t, kb.Poll())
	assert.True(t, kb.Pressed(KeyRight))
	assert.Empty(t, kb.Poll())
	assert.True(t, kb.Pressed(KeyJump))
	assert.Equal(t, []Event{Quit()}, kb.Poll())
	assert.Equal(t, []Event{Quit()}, kb.Poll())

	empty, err := ParseScript("")
	require.NoError(t, err)
	assert.Equal(t, []Event{Quit()}, empty.Poll())
}
