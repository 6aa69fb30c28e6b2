// Package notify delivers best-effort desktop alerts. Alerts are a
// convenience, never a correctness requirement: every failure mode ends
// in a silent no-op and the scheduler is never blocked for more than a
// short bound.
package notify

import (
	"time"

	"github.com/gen2brain/beeep"
)

const (
	// sendTimeout bounds a single backend call.
	sendTimeout = 2 * time.Second
	// dedupeWindow suppresses an identical (title, body) repeat.
	dedupeWindow = 20 * time.Second
	// failureMute pauses delivery after the last backend gives up.
	failureMute = 10 * time.Minute
)

// Backend sends one notification. Implementations may block; the
// Notifier bounds them with sendTimeout.
type Backend func(title, body string) error

// Notifier owns the mutable notification state: mute-until timestamp,
// last-sent dedupe key and backend preference. Constructed once at
// process start and threaded through calls; there is no package-level
// singleton. Not safe for concurrent use; the scheduler is the single
// caller.
type Notifier struct {
	now func() time.Time

	backends []Backend
	current  int // index of the preferred backend

	lastTitle  string
	lastBody   string
	lastSentAt time.Time
	mutedUntil time.Time
}

// New builds a Notifier over the desktop toast backend with the
// terminal bell as fallback.
func New(now func() time.Time) *Notifier {
	return NewWithBackends(now, desktopToast, terminalBell)
}

// NewWithBackends builds a Notifier over an explicit backend chain,
// tried in order. Test seam.
func NewWithBackends(now func() time.Time, backends ...Backend) *Notifier {
	return &Notifier{now: now, backends: backends}
}

// Notify delivers title/body best-effort. Duplicates inside the dedupe
// window and anything sent while muted are dropped. A backend that
// fails or exceeds the send timeout is demoted; when every backend has
// failed, delivery is muted for a while instead of erroring.
func (n *Notifier) Notify(title, body string) {
	now := n.now()
	if now.Before(n.mutedUntil) {
		return
	}
	if title == n.lastTitle && body == n.lastBody && now.Sub(n.lastSentAt) < dedupeWindow {
		return
	}
	n.lastTitle, n.lastBody, n.lastSentAt = title, body, now

	for n.current < len(n.backends) {
		if n.send(n.backends[n.current], title, body) {
			return
		}
		n.current++
	}

	// Every backend failed; stay quiet for a while, then retry the chain.
	n.mutedUntil = now.Add(failureMute)
	n.current = 0
}

// send runs one backend bounded by sendTimeout. The goroutine is left
// to finish on its own if the backend hangs.
func (n *Notifier) send(backend Backend, title, body string) bool {
	done := make(chan error, 1)
	go func() {
		done <- backend(title, body)
	}()

	select {
	case err := <-done:
		return err == nil
	case <-time.After(sendTimeout):
		return false
	}
}

func desktopToast(title, body string) error {
	return beeep.Notify(title, body, "")
}

func terminalBell(title, body string) error {
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}
