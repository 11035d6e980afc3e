package landmark

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecode(t *testing.T) {
	f, err := Decode([]byte(`{"t": 120, "landmarks": [{"x": 0.1, "y": 0.2}, {"x": 0.3, "y": 0.4, "visibility": 0.9}]}`))
	require.NoError(t, err)
	assert.Equal(t, int64(120), f.TimestampMs)
	require.Len(t, f.Landmarks, 2)
	assert.Equal(t, 0.9, f.Landmarks[1].Visibility)

	p, ok := f.Landmark(1)
	require.True(t, ok)
	assert.Equal(t, 0.3, p.X)
	_, ok = f.Landmark(RightWrist)
	assert.False(t, ok, "short frame has no wrist")
	_, ok = f.Landmark(-1)
	assert.False(t, ok)
}

func TestDecodeAbsentLandmarksIsEmpty(t *testing.T) {
	for _, src := range []string{`{"t": 5}`, `{"t": 5, "landmarks": null}`, `{"t": 5, "landmarks": []}`} {
		f, err := Decode([]byte(src))
		require.NoError(t, err, src)
		assert.True(t, f.Empty(), src)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, src := range []string{`not json`, `{"t": -1}`, `{"landmarks": "x"}`} {
		_, err := Decode([]byte(src))
		assert.ErrorIs(t, err, ErrMalformedFrame, src)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := Frame{TimestampMs: 42, Landmarks: []Point{{X: 0.5, Y: 0.25}}}
	data, err := Encode(in)
	require.NoError(t, err)
	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadLines(t *testing.T) {
	src := strings.Join([]string{
		`{"t": 0, "landmarks": [{"x": 0.5, "y": 0.5}]}`,
		``,
		`{"t": 100, "landmarks": []}`,
		`{"t": 200}`,
	}, "\n")

	out := make(chan Frame, 8)
	require.NoError(t, ReadLines(context.Background(), strings.NewReader(src), out, false))
	close(out)

	var got []Frame
	for f := range out {
		got = append(got, f)
	}
	require.Len(t, got, 3)
	assert.Equal(t, int64(200), got[2].TimestampMs)
	assert.True(t, got[1].Empty())
}

func TestReadLinesMalformedReportsLine(t *testing.T) {
	out := make(chan Frame, 8)
	err := ReadLines(context.Background(), strings.NewReader("{\"t\": 1}\n{oops\n"), out, false)
	require.ErrorIs(t, err, ErrMalformedFrame)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadLinesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan Frame)
	err := ReadLines(ctx, strings.NewReader("{\"t\": 1}\n"), out, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServerDeliversFrames(t *testing.T) {
	out := make(chan Frame, 4)
	s := NewServer(out, zap.NewNop())
	s.now = func() time.Time { return time.UnixMilli(777) }

	ts := httptest.NewServer(s)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"t": 10, "landmarks": [{"x": 0.1, "y": 0.2}]}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`garbage`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"landmarks": []}`)))

	first := receive(t, out)
	assert.Equal(t, int64(10), first.TimestampMs)

	second := receive(t, out)
	assert.Equal(t, int64(777), second.TimestampMs, "unstamped frames take receipt time")
	assert.True(t, second.Empty())

	assert.Eventually(t, func() bool { return s.Stats().Malformed == 1 }, time.Second, 10*time.Millisecond)
}

func TestServerDropsWhenFull(t *testing.T) {
	out := make(chan Frame, 1)
	s := NewServer(out, zap.NewNop())
	s.deliver(Frame{TimestampMs: 1})
	s.deliver(Frame{TimestampMs: 2})

	st := s.Stats()
	assert.Equal(t, uint64(1), st.Delivered)
	assert.Equal(t, uint64(1), st.Dropped)
	assert.Equal(t, int64(1), (<-out).TimestampMs)
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(make(chan Frame), zap.NewNop()).Serve(ctx, ln, "/landmarks") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func receive(t *testing.T, ch <-chan Frame) Frame {
	t.Helper()
	select {
	case f := <-ch:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
		return Frame{}
	}
}
