package lcu

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type fixtureLister struct {
	calls atomic.Int32
	fn    func(call int) []ProcessInfo
}

func (f *fixtureLister) ListProcesses(ctx context.Context) ([]ProcessInfo, error) {
	n := int(f.calls.Add(1))
	return f.fn(n), nil
}

const fullCmdline = "LeagueClientUx.exe --app-port=12345 --remoting-auth-token=AAA --riotclient-app-port=54321 --riotclient-auth-token=BBB"

func TestCredentialDiscoveryColdStart(t *testing.T) {
	lister := &fixtureLister{fn: func(call int) []ProcessInfo {
		return []ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: fullCmdline}}
	}}
	d := NewCredentialDiscovery(lister)

	cred, err := d.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.AppPort != 12345 || cred.RemotingToken != "AAA" || cred.AuxPort != 54321 || cred.AuxToken != "BBB" {
		t.Fatalf("unexpected credential: %+v", cred)
	}
}

func TestCredentialDiscoveryCachesWithinTTL(t *testing.T) {
	lister := &fixtureLister{fn: func(call int) []ProcessInfo {
		return []ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: fullCmdline}}
	}}
	d := NewCredentialDiscovery(lister)

	if _, err := d.Current(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := d.Current(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.calls.Load() != 1 {
		t.Fatalf("expected 1 scan, got %d", lister.calls.Load())
	}
}

func TestCredentialDiscoveryInvalidateForcesRescan(t *testing.T) {
	lister := &fixtureLister{fn: func(call int) []ProcessInfo {
		return []ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: fullCmdline}}
	}}
	d := NewCredentialDiscovery(lister)

	if _, err := d.Current(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.Invalidate()
	if _, err := d.Current(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.calls.Load() != 2 {
		t.Fatalf("expected 2 scans after invalidate, got %d", lister.calls.Load())
	}
}

func TestCredentialDiscoveryFallsBackToSecondary(t *testing.T) {
	lister := &fixtureLister{fn: func(call int) []ProcessInfo {
		return []ProcessInfo{
			{PID: 1, Name: "LeagueClientUx.exe", CmdLine: "LeagueClientUx.exe --app-port=1"},
			{PID: 2, Name: "LeagueClient.exe", CmdLine: fullCmdline},
		}
	}}
	d := NewCredentialDiscovery(lister)

	cred, err := d.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.AppPort != 12345 {
		t.Fatalf("expected fallback to secondary process, got %+v", cred)
	}
}

func TestCredentialDiscoveryNoProcessFound(t *testing.T) {
	lister := &fixtureLister{fn: func(call int) []ProcessInfo {
		return nil
	}}
	d := NewCredentialDiscovery(lister)

	_, err := d.Current(context.Background())
	if err == nil {
		t.Fatal("expected error when no process is present")
	}
	if kind, ok := KindOf(err); !ok || kind != KindNoCredential {
		t.Fatalf("expected KindNoCredential, got %v", err)
	}
}

func TestCredentialDiscoveryRetriesBeforeSucceeding(t *testing.T) {
	lister := &fixtureLister{fn: func(call int) []ProcessInfo {
		if call < 3 {
			return []ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: "LeagueClientUx.exe --app-port=1"}}
		}
		return []ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: fullCmdline}}
	}}
	d := NewCredentialDiscovery(lister)

	start := time.Now()
	cred, err := d.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.AppPort != 12345 {
		t.Fatalf("unexpected credential: %+v", cred)
	}
	if elapsed := time.Since(start); elapsed < time.Millisecond {
		// Sanity check only: retries should not return instantly even
		// though the fake lister never blocks.
		t.Logf("discovery took %v", elapsed)
	}
	if lister.calls.Load() != 3 {
		t.Fatalf("expected 3 scans, got %d", lister.calls.Load())
	}
}

func TestCredentialDiscoveryExhaustsRetries(t *testing.T) {
	lister := &fixtureLister{fn: func(call int) []ProcessInfo {
		return []ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: "LeagueClientUx.exe --app-port=1"}}
	}}
	d := NewCredentialDiscovery(lister)

	_, err := d.Current(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if lister.calls.Load() != 3 {
		t.Fatalf("expected 3 scans, got %d", lister.calls.Load())
	}
}
