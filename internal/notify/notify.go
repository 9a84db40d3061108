// Package notify carries the transient user-facing notifications (the toast
// popups of the storefront). Controllers report outcomes through a Notifier
// and never decide how the message is shown.
package notify

import "log"

type Kind string

const (
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

type Notifier interface {
	Notify(kind Kind, message string)
}

// Log writes notifications to the process log. Default for binaries that
// have no UI attached.
type Log struct{}

func (Log) Notify(kind Kind, message string) {
	log.Printf("[%s] %s", kind, message)
}

// Recorder accumulates notifications in order. The web layer drains it into
// flash messages after each action; tests assert on it.
type Recorder struct {
	Entries []Entry
}

type Entry struct {
	Kind    Kind
	Message string
}

func (r *Recorder) Notify(kind Kind, message string) {
	r.Entries = append(r.Entries, Entry{Kind: kind, Message: message})
}

// Last returns the most recent entry, or a zero Entry when none exist.
func (r *Recorder) Last() Entry {
	if len(r.Entries) == 0 {
		return Entry{}
	}
	return r.Entries[len(r.Entries)-1]
}
