package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnBuildStart(ctx, "ts", 100)
	r.OnBuildComplete(ctx, "ts", time.Second, nil)
	r.OnRenderStart(ctx, "ts", []string{"svg"})
	r.OnRenderComplete(ctx, "ts", []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact:abc:svg")
	c.OnCacheMiss(ctx, "artifact:abc:png")
	c.OnCacheSet(ctx, "artifact:abc:png", 1024)

	a := NoopAPIHooks{}
	a.OnRequest(ctx, "POST", "/v1/render/ts")
	a.OnResponse(ctx, "POST", "/v1/render/ts", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("API() should return NoopAPIHooks by default")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customAPI := &testAPIHooks{}
	SetAPIHooks(customAPI)
	if API() != customAPI {
		t.Error("SetAPIHooks should set custom hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRenderHooks{}
	SetRenderHooks(custom)
	SetRenderHooks(nil)

	if Render() != custom {
		t.Error("SetRenderHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnBuildStart(ctx, "profile", 12)
	h.OnBuildComplete(ctx, "profile", time.Millisecond, errors.New("no depth column"))
	h.OnRenderComplete(ctx, "profile", []string{"png"}, time.Millisecond, nil)
	h.OnCacheHit(ctx, "artifact:abc:png")
	h.OnResponse(ctx, "POST", "/v1/render/profile", 400, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"build start", "rows=12", "build failed", "no depth column", "render done", "cache hit", "status=400"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheMiss(context.Background(), "k")
	if buf.Len() != 0 {
		t.Errorf("debug event logged at info level: %s", buf.String())
	}
	if NewLogHooks(nil).Logger == nil {
		t.Error("NewLogHooks(nil) has no logger")
	}
}

type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testAPIHooks struct{ NoopAPIHooks }
