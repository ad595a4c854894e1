package signal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasonCastel/ChatIRC/internal/app"
	"github.com/JasonCastel/ChatIRC/internal/app/route"
	"github.com/JasonCastel/ChatIRC/internal/config"
	"github.com/JasonCastel/ChatIRC/internal/core"
	"github.com/JasonCastel/ChatIRC/internal/domain"
)

// stubConn collects the frames a connection would have written.
type stubConn struct {
	frames []core.Frame
}

func (c *stubConn) TrySend(f core.Frame) error {
	c.frames = append(c.frames, f)
	return nil
}

func (c *stubConn) Close() {}

func (c *stubConn) types(t *testing.T) []string {
	t.Helper()
	out := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		var env struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(f, &env))
		out = append(out, env.Type)
	}
	return out
}

func newTestController(t *testing.T) *ChatWSController {
	t.Helper()
	cfg := &config.Config{SendBuffer: 32}
	reg := app.NewRegistry()
	ctl := NewChatWSController(cfg, reg)
	ctl.Router = route.NewRouter(reg, app.NewDirectory(reg), ctl)
	return ctl
}

func connectStub(t *testing.T, ctl *ChatWSController, id domain.SessionID) *stubConn {
	t.Helper()
	conn := &stubConn{}
	require.NoError(t, ctl.Router.Connect(id, conn, nil))
	return conn
}

func TestFrameDispatchLobbyExchange(t *testing.T) {
	ctl := newTestController(t)
	alice := connectStub(t, ctl, "A")
	bob := connectStub(t, ctl, "B")

	assert.Equal(t, []string{"message"}, alice.types(t), "welcome on connect")

	ctl.handleFrame("A", []byte(`{"type":"enterRoom","name":"Alice","room":"lobby"}`))
	ctl.handleFrame("B", []byte(`{"type":"enterRoom","name":"Bob","room":"lobby"}`))

	// Bob's join reaches Alice as a notice plus refreshed lists.
	assert.Contains(t, alice.types(t), "userList")
	assert.Contains(t, alice.types(t), "roomList")

	before := len(bob.frames)
	ctl.handleFrame("A", []byte(`{"type":"message","name":"Alice","text":"hi"}`))
	require.Len(t, bob.frames, before+1)

	var msg route.ChatMessage
	require.NoError(t, json.Unmarshal(bob.frames[len(bob.frames)-1], &msg))
	assert.Equal(t, "Alice", msg.Name)
	assert.Equal(t, "hi", msg.Text)
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, msg.Time)
}

func TestFrameDispatchSameRoomRejoinAudience(t *testing.T) {
	ctl := newTestController(t)
	alice := connectStub(t, ctl, "A")
	bob := connectStub(t, ctl, "B")

	ctl.handleFrame("A", []byte(`{"type":"enterRoom","name":"Alice","room":"lobby"}`))
	ctl.handleFrame("B", []byte(`{"type":"enterRoom","name":"Bob","room":"lobby"}`))

	aliceBefore := len(alice.frames)
	bobBefore := len(bob.frames)
	ctl.handleFrame("A", []byte(`{"type":"enterRoom","name":"Alice","room":"lobby"}`))

	var userLists int
	for _, f := range alice.frames[aliceBefore:] {
		var env struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		require.NoError(t, json.Unmarshal(f, &env))
		if env.Type == "message" {
			assert.NotContains(t, env.Text, "left", "rejoiner must not see their own leave notice")
		}
		if env.Type == "userList" {
			userLists++
		}
	}
	assert.Equal(t, 1, userLists, "rejoiner gets one occupant list, not a duplicate")

	// The peer still sees the full leave/join pair.
	var bobTexts []string
	for _, f := range bob.frames[bobBefore:] {
		var env struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		require.NoError(t, json.Unmarshal(f, &env))
		if env.Type == "message" {
			bobTexts = append(bobTexts, env.Text)
		}
	}
	require.Len(t, bobTexts, 2)
	assert.Contains(t, bobTexts[0], "left")
	assert.Contains(t, bobTexts[1], "joined")
}

func TestFrameDispatchActivitySkipsTypist(t *testing.T) {
	ctl := newTestController(t)
	alice := connectStub(t, ctl, "A")
	bob := connectStub(t, ctl, "B")

	ctl.handleFrame("A", []byte(`{"type":"enterRoom","name":"Alice","room":"lobby"}`))
	ctl.handleFrame("B", []byte(`{"type":"enterRoom","name":"Bob","room":"lobby"}`))

	aliceBefore := len(alice.frames)
	ctl.handleFrame("A", []byte(`{"type":"activity","name":"Alice"}`))

	assert.Len(t, alice.frames, aliceBefore, "typist never sees their own indicator")
	require.NotEmpty(t, bob.frames)

	var notice route.TypingNotice
	require.NoError(t, json.Unmarshal(bob.frames[len(bob.frames)-1], &notice))
	assert.Equal(t, route.TypingNotice{Type: "activity", Name: "Alice"}, notice)
}

func TestFrameDispatchRejectsMalformedInput(t *testing.T) {
	ctl := newTestController(t)
	alice := connectStub(t, ctl, "A")
	before := len(alice.frames)

	ctl.handleFrame("A", []byte(`not json`))
	ctl.handleFrame("A", []byte(`{"type":"bogus"}`))
	ctl.handleFrame("A", []byte(`{"type":"enterRoom","name":"","room":"lobby"}`))
	ctl.handleFrame("A", []byte(`{"type":"message","name":"Alice","text":"hi"}`))

	assert.Len(t, alice.frames, before, "nothing happened, and no error frame either")
	sess, ok := ctl.Registry.Get("A")
	require.True(t, ok)
	assert.False(t, sess.Bound())
}

func TestFrameDispatchPing(t *testing.T) {
	ctl := newTestController(t)
	alice := connectStub(t, ctl, "A")

	ctl.handleFrame("A", []byte(`{"type":"ping"}`))

	require.NotEmpty(t, alice.frames)
	var env struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(alice.frames[len(alice.frames)-1], &env))
	assert.Equal(t, "pong", env.Type)
}
