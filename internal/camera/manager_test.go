package camera

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"camprobe/internal/ping"
)

// refusingDialer は常に接続に失敗する
type refusingDialer struct{}

func (refusingDialer) DialContext(context.Context, string, string) (net.Conn, error) {
	return nil, errors.New("connection refused")
}

// silentPinger は常に応答なしを返す
type silentPinger struct{}

func (silentPinger) Ping(context.Context, string, time.Duration, int) (bool, error) {
	return false, nil
}

func newTestManager(t *testing.T, cameras ...Camera) *DefaultCameraManager {
	t.Helper()

	store := NewStore("", nil)
	for _, cam := range cameras {
		if _, err := store.Add(cam); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	prober := ping.NewProber(ping.WithDialer(refusingDialer{}), ping.WithPinger(silentPinger{}))
	return NewDefaultCameraManager(store, prober, nil)
}

func TestDefaultCameraManager_Basic(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t,
		Camera{Name: "front", VideoConfig: VideoConfig{Source: "-i rtsp://admin:pw@10.0.0.5:554/stream?x=1"}},
		Camera{Name: "demo", VideoConfig: VideoConfig{Source: "-re -stream_loop -1 -i /videos/cam1.mp4"}},
	)

	if err := manager.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = manager.Stop(ctx) }()

	cameras := manager.GetCameras()
	if len(cameras) != 2 {
		t.Fatalf("Expected 2 cameras, got %d", len(cameras))
	}

	want := map[string]string{
		"front": "rtsp://10.0.0.5:554/stream",
		"demo":  "file:///videos/cam1.mp4",
	}
	for _, cam := range cameras {
		if cam.ID == "" {
			t.Errorf("Expected camera %s to have an ID", cam.Name)
		}
		if cam.URL != want[cam.Name] {
			t.Errorf("Expected camera %s URL %q, got %q", cam.Name, want[cam.Name], cam.URL)
		}
	}
}

func TestDefaultCameraManager_GetCameraAndSettings(t *testing.T) {
	manager := newTestManager(t,
		Camera{Name: "demo", VideoConfig: VideoConfig{Source: "-re -stream_loop -1 -i ./samples/demo.mp4"}},
	)

	cam, found := manager.GetCamera("demo")
	if !found {
		t.Fatal("Camera not found by name")
	}
	if cam.URL != "file:///./samples/demo.mp4" {
		t.Errorf("Unexpected URL: %s", cam.URL)
	}
	if cam.VideoConfig.StillImageSource != "-i ./samples/demo.mp4" {
		t.Errorf("Unexpected still image source: %q", cam.VideoConfig.StillImageSource)
	}

	settings, found := manager.GetSettings("demo")
	if !found {
		t.Fatal("Settings not found by name")
	}
	if settings.URL != cam.URL {
		t.Errorf("Settings URL mismatch: expected %s, got %s", cam.URL, settings.URL)
	}

	if _, found := manager.GetCamera("missing"); found {
		t.Error("Camera should not be found")
	}
	if _, found := manager.GetSettings("missing"); found {
		t.Error("Settings should not be found")
	}
}

func TestDefaultCameraManager_AddRemoveCamera(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	cam, err := manager.AddCamera(ctx, Camera{Name: "garage", VideoConfig: VideoConfig{Source: "-i http://10.0.0.9/mjpg"}})
	if err != nil {
		t.Fatalf("AddCamera failed: %v", err)
	}
	if cam.URL != "http://10.0.0.9/mjpg" {
		t.Errorf("Unexpected URL: %s", cam.URL)
	}

	if _, err := manager.AddCamera(ctx, Camera{Name: "garage"}); !errors.Is(err, ErrCameraExists) {
		t.Errorf("Expected ErrCameraExists, got %v", err)
	}

	if err := manager.RemoveCamera(ctx, "garage"); err != nil {
		t.Fatalf("RemoveCamera failed: %v", err)
	}
	if len(manager.GetCameras()) != 0 {
		t.Fatal("Expected 0 cameras after removal")
	}

	if err := manager.RemoveCamera(ctx, "garage"); !errors.Is(err, ErrCameraNotFound) {
		t.Errorf("Expected ErrCameraNotFound, got %v", err)
	}
}

func TestDefaultCameraManager_UpdateCamera(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t,
		Camera{Name: "front", VideoConfig: VideoConfig{Source: "-i rtsp://10.0.0.5:554/stream"}},
		Camera{Name: "back", VideoConfig: VideoConfig{Source: "-i rtsp://10.0.0.6:554/stream"}},
	)

	name := "entrance"
	cam, err := manager.UpdateCamera(ctx, "front", CameraUpdate{
		Name:        &name,
		VideoConfig: &VideoConfig{Source: "-i http://user:pw@10.0.0.7/mjpg"},
	})
	if err != nil {
		t.Fatalf("UpdateCamera failed: %v", err)
	}
	if cam.URL != "http://10.0.0.7/mjpg" {
		t.Errorf("Unexpected URL: %s", cam.URL)
	}
	if _, found := manager.GetCamera("front"); found {
		t.Error("Old name should not be found")
	}

	taken := "back"
	if _, err := manager.UpdateCamera(ctx, "entrance", CameraUpdate{Name: &taken}); !errors.Is(err, ErrCameraExists) {
		t.Errorf("Expected ErrCameraExists, got %v", err)
	}

	if err := manager.RemoveAllCameras(ctx); err != nil {
		t.Fatalf("RemoveAllCameras failed: %v", err)
	}
	if len(manager.GetCameras()) != 0 {
		t.Fatal("Expected 0 cameras after RemoveAllCameras")
	}
}

func TestDefaultCameraManager_PingCamera(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "cam1.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	manager := newTestManager(t,
		Camera{Name: "local", VideoConfig: VideoConfig{Source: "-i " + filepath.ToSlash(file)}},
		Camera{Name: "missing-file", VideoConfig: VideoConfig{Source: "-i " + filepath.ToSlash(filepath.Join(dir, "nope.mp4"))}},
		Camera{Name: "unreachable", VideoConfig: VideoConfig{Source: "-i rtsp://10.0.0.5:554/stream"}},
		Camera{Name: "no-input", VideoConfig: VideoConfig{Source: "-f lavfi testsrc"}},
	)

	testCases := []struct {
		name string
		want bool
	}{
		{"local", true},
		{"missing-file", false},
		{"unreachable", false},
		{"no-input", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := manager.PingCamera(ctx, tc.name, 0)
			if err != nil {
				t.Fatalf("PingCamera failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("PingCamera(%s) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}

	if _, err := manager.PingCamera(ctx, "unknown", 1); !errors.Is(err, ErrCameraNotFound) {
		t.Errorf("Expected ErrCameraNotFound, got %v", err)
	}
}

func TestDefaultCameraManager_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t,
		Camera{Name: "a", VideoConfig: VideoConfig{Source: "-i /dev/null"}},
		Camera{Name: "b", VideoConfig: VideoConfig{Source: "-i /dev/null"}},
	)

	done := make(chan bool, 3)

	go func() {
		defer func() { done <- true }()
		for i := 0; i < 10; i++ {
			manager.GetCameras()
			time.Sleep(1 * time.Millisecond)
		}
	}()

	go func() {
		defer func() { done <- true }()
		for _, cam := range manager.GetCameras() {
			manager.GetCamera(cam.Name)
			time.Sleep(1 * time.Millisecond)
		}
	}()

	go func() {
		defer func() { done <- true }()
		for _, name := range []string{"a", "b"} {
			_, _ = manager.PingCamera(ctx, name, 1)
		}
	}()

	<-done
	<-done
	<-done

	if len(manager.GetCameras()) != 2 {
		t.Fatal("Expected 2 cameras after concurrent access")
	}
}
