package lcu

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

// ProcessInfo is one row of the local process table.
type ProcessInfo struct {
	PID     int
	Name    string
	CmdLine string
}

// ProcessLister abstracts process-table enumeration so tests can substitute
// a fixture instead of touching the real OS.
type ProcessLister interface {
	ListProcesses(ctx context.Context) ([]ProcessInfo, error)
}

// PSProcessLister lists processes by shelling out to `ps`, mirroring the
// subprocess-abstraction pattern used for CLI invocation elsewhere in this
// module (one real implementation behind a small interface).
type PSProcessLister struct{}

func (PSProcessLister) ListProcesses(ctx context.Context) ([]ProcessInfo, error) {
	out, err := exec.CommandContext(ctx, "ps", "-axww", "-o", "pid=,comm=,args=").Output()
	if err != nil {
		return nil, err
	}
	var procs []ProcessInfo
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) < 2 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		name := fields[1]
		cmdline := name
		if len(fields) == 3 {
			cmdline = fields[2]
		}
		procs = append(procs, ProcessInfo{PID: pid, Name: name, CmdLine: cmdline})
	}
	return procs, nil
}

var (
	primaryProcessNames   = []string{"leagueclientux"}
	secondaryProcessNames = []string{"leagueclient"}
	tertiaryProcessNames  = []string{"leagueoflegends"}
)

var (
	reAuxToken = regexp.MustCompile(`--riotclient-auth-token=(\S+)`)
	reAuxPort  = regexp.MustCompile(`--riotclient-app-port=(\d+)`)
	reRemoting = regexp.MustCompile(`--remoting-auth-token=(\S+)`)
	reAppPort  = regexp.MustCompile(`--app-port=(\d+)`)
)

// CredentialDiscovery implements the discover-cache-invalidate cycle of
// §4.1: a 60s TTL cache, forced invalidation on auth failure, and three
// retries 500ms apart since the tokens only appear once the process is
// past early startup.
type CredentialDiscovery struct {
	mu         sync.RWMutex
	cached     *Credential
	acquiredAt time.Time

	ttl      time.Duration
	lister   ProcessLister
	backoff  retry.Backoff
	attempts uint64
}

// NewCredentialDiscovery builds a discovery service backed by lister.
func NewCredentialDiscovery(lister ProcessLister) *CredentialDiscovery {
	return &CredentialDiscovery{
		ttl:      60 * time.Second,
		lister:   lister,
		backoff:  retry.NewFixed(500 * time.Millisecond),
		attempts: 3,
	}
}

// Current returns the cached credential if still fresh, otherwise rescans.
func (d *CredentialDiscovery) Current(ctx context.Context) (*Credential, error) {
	d.mu.RLock()
	if d.cached != nil && time.Since(d.acquiredAt) < d.ttl {
		c := *d.cached
		d.mu.RUnlock()
		return &c, nil
	}
	d.mu.RUnlock()
	return d.Refresh(ctx)
}

// SetTTL overrides the credential cache lifetime, letting the CLI's
// --credential-ttl flag tune how aggressively Current rescans.
func (d *CredentialDiscovery) SetTTL(ttl time.Duration) {
	d.mu.Lock()
	d.ttl = ttl
	d.mu.Unlock()
}

// Invalidate drops the cached credential unconditionally.
func (d *CredentialDiscovery) Invalidate() {
	d.mu.Lock()
	d.cached = nil
	d.acquiredAt = time.Time{}
	d.mu.Unlock()
}

// Refresh forces a rescan, retrying up to d.attempts times.
func (d *CredentialDiscovery) Refresh(ctx context.Context) (*Credential, error) {
	b := retry.WithMaxRetries(d.attempts-1, d.backoff)

	var cred *Credential
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		c, err := d.scanOnce(ctx)
		if err != nil {
			d.Invalidate()
			return retry.RetryableError(err)
		}
		cred = c
		return nil
	})
	if err != nil {
		return nil, NewError(KindNoCredential, err, "credential discovery exhausted retries")
	}

	d.mu.Lock()
	d.cached = cred
	d.acquiredAt = time.Now()
	d.mu.Unlock()

	c := *cred
	return &c, nil
}

// ProcessExists reports whether any known game process is running,
// independent of whether its command line currently carries usable tokens.
func (d *CredentialDiscovery) ProcessExists(ctx context.Context) bool {
	procs, err := d.lister.ListProcesses(ctx)
	if err != nil {
		return false
	}
	for _, p := range procs {
		name := strings.ToLower(p.Name)
		if containsAny(name, primaryProcessNames) || containsAny(name, secondaryProcessNames) || containsAny(name, tertiaryProcessNames) {
			return true
		}
	}
	return false
}

func (d *CredentialDiscovery) scanOnce(ctx context.Context) (*Credential, error) {
	procs, err := d.lister.ListProcesses(ctx)
	if err != nil {
		return nil, NewError(KindTransport, err, "list processes")
	}

	var primaryCmdline, secondaryCmdline string
	for _, p := range procs {
		name := strings.ToLower(p.Name)
		switch {
		case containsAny(name, primaryProcessNames):
			primaryCmdline = p.CmdLine
		case containsAny(name, secondaryProcessNames):
			secondaryCmdline = p.CmdLine
		case containsAny(name, tertiaryProcessNames) && secondaryCmdline == "":
			secondaryCmdline = p.CmdLine
		}
	}

	if primaryCmdline == "" && secondaryCmdline == "" {
		return nil, NewError(KindNoCredential, nil, "no known game process found")
	}

	if cred, ok := parseCredential(primaryCmdline); ok {
		return cred, nil
	}
	if cred, ok := parseCredential(secondaryCmdline); ok {
		return cred, nil
	}
	return nil, NewError(KindNoCredential, nil, "process command line missing auth tokens")
}

func parseCredential(cmdline string) (*Credential, bool) {
	if cmdline == "" {
		return nil, false
	}
	auxToken := firstMatch(reAuxToken, cmdline)
	auxPort := firstMatch(reAuxPort, cmdline)
	remoting := firstMatch(reRemoting, cmdline)
	appPort := firstMatch(reAppPort, cmdline)
	if auxToken == "" || auxPort == "" || remoting == "" || appPort == "" {
		return nil, false
	}

	ap, err := strconv.Atoi(appPort)
	if err != nil {
		return nil, false
	}
	xp, err := strconv.Atoi(auxPort)
	if err != nil {
		return nil, false
	}

	return &Credential{AppPort: ap, RemotingToken: remoting, AuxPort: xp, AuxToken: auxToken}, true
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
