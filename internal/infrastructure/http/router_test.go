package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"btcwidget-service/internal/application"
	"btcwidget-service/internal/domain"
	redisstore "btcwidget-service/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setup(f *fakeFetcher) (http.Handler, *application.WidgetService) {
	svc, _ := NewInMemoryService(f)
	return NewRouter(NewServer(svc)), svc
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h, _ := setup(&fakeFetcher{})
	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	require.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestReadyz(t *testing.T) {
	h, _ := setup(&fakeFetcher{})
	rec := get(t, h, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "READY", rec.Body.String())
}

func TestReadyz_FailingCheck(t *testing.T) {
	svc, _ := NewInMemoryService(&fakeFetcher{})
	srv := NewServer(svc)
	srv.SetReadyCheck(func(ctx context.Context) error { return errors.New("redis down") })
	rec := get(t, NewRouter(srv), "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"code":503,"message":"timeline store not ready"}`, rec.Body.String())
}

func TestGetQuote(t *testing.T) {
	h, _ := setup(&fakeFetcher{quote: domain.PreviewQuote})
	rec := get(t, h, "/quote")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp quoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Failed)
	require.Equal(t, domain.DirectionDown, resp.Direction)
	require.InDelta(t, -962.19, resp.Difference, 1e-6)
	require.Equal(t, "42727.3", resp.Display.Price)
	require.Equal(t, "-962.19", resp.Display.Difference)
	require.Equal(t, "2.51", resp.Display.Volume)
}

func TestGetQuote_FetchFailed(t *testing.T) {
	h, _ := setup(&fakeFetcher{failed: true})
	rec := get(t, h, "/quote")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp quoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Failed)
	require.Equal(t, domain.DirectionFlatOrError, resp.Direction)
	require.Equal(t, application.Display{
		Price:      application.DefaultPlaceholder,
		Difference: application.DefaultPlaceholder,
		Volume:     application.DefaultPlaceholder,
	}, resp.Display)
}

func TestGetTimeline(t *testing.T) {
	h, _ := setup(&fakeFetcher{quote: domain.PreviewQuote})
	rec := get(t, h, "/timeline")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp timelineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	require.WithinDuration(t, resp.Entries[0].Date.Add(time.Hour), resp.RefreshAfter, time.Second)
}

func TestGetPlaceholder(t *testing.T) {
	f := &fakeFetcher{failed: true}
	h, _ := setup(f)
	rec := get(t, h, "/widget/placeholder")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp quoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Failed)
	require.InDelta(t, domain.PreviewQuote.Price24h, resp.Price24h, 1e-9)
}

func TestGetWidget(t *testing.T) {
	h, _ := setup(&fakeFetcher{quote: domain.PreviewQuote})

	rec := get(t, h, "/widget/large?scheme=dark")
	require.Equal(t, http.StatusOK, rec.Code)
	var v application.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	require.Equal(t, domain.FamilyLarge, v.Family)
	require.Equal(t, "VOLUME: 2.51", v.Volume)
	require.Equal(t, "pink", v.VolumeColor)
	require.Equal(t, 64, v.PriceSize)

	rec = get(t, h, "/widget/medium")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	require.Equal(t, application.LayoutRow, v.Layout)
}

func TestGetWidget_BadRequest(t *testing.T) {
	h, _ := setup(&fakeFetcher{quote: domain.PreviewQuote})
	rec := get(t, h, "/widget/enormous")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "unknown family"))

	rec = get(t, h, "/widget/small?scheme=sepia")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func readTimeline(t *testing.T, conn *websocket.Conn) timelineResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg timelineResponse
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func dialStream(t *testing.T, h http.Handler) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/widget/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestStreamTimeline_Memory(t *testing.T) {
	f := &fakeFetcher{quote: domain.PreviewQuote}
	h, svc := setup(f)
	conn := dialStream(t, h)

	first := readTimeline(t, conn)
	require.Len(t, first.Entries, 1)
	require.Equal(t, "-962.19", first.Entries[0].Display.Difference)

	f.set(domain.Quote{Price24h: 43689.54, Volume24h: 3, LastTradePrice: 42727.35})
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	next := readTimeline(t, conn)
	require.Equal(t, "+962.19", next.Entries[0].Display.Difference)
	require.Equal(t, domain.DirectionUp, next.Entries[0].Direction)
}

func TestStreamTimeline_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fakeFetcher{quote: domain.PreviewQuote}
	svc := application.NewWidgetService(f, redisstore.New(client, nil), application.WithRefreshInterval(time.Hour))
	conn := dialStream(t, NewRouter(NewServer(svc)))

	first := readTimeline(t, conn)
	require.Len(t, first.Entries, 1)
	require.True(t, mr.Exists(redisstore.DefaultKey))

	f.mu.Lock()
	f.failed = true
	f.mu.Unlock()
	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)

	next := readTimeline(t, conn)
	require.True(t, next.Entries[0].Failed)
	require.Equal(t, application.DefaultPlaceholder, next.Entries[0].Display.Price)
}
