// Package workflow holds the per-screen state of the availability and
// matching screens. Each screen owns its state object; nothing here is
// shared between screens or goroutines. Every failure is turned into a
// Notice for the user and the screen stays usable.
package workflow

import (
	"errors"

	"github.com/quackapp/shift-matching/backend/internal/client"
)

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeValidation
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeValidation:
		return "validation"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is what the user is shown after an action: an alert, a modal or
// an inline message.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

func (n Notice) IsError() bool {
	return n.Kind == NoticeError || n.Kind == NoticeValidation
}

// Confirmation is a pending destructive action awaiting a yes/no answer.
type Confirmation struct {
	Title   string
	Message string
}

// errorNotice maps err onto the three user-facing failure classes: local
// validation, a server message (or fallback when the server sent none), and
// no response at all.
func errorNotice(err error, fallback, transportMessage string) *Notice {
	var vErr *client.ValidationError
	if errors.As(err, &vErr) {
		return &Notice{Kind: NoticeValidation, Title: "Error", Message: vErr.Message}
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return &Notice{Kind: NoticeError, Title: "Error", Message: msg}
	}

	return &Notice{Kind: NoticeError, Title: "Error", Message: transportMessage}
}

func validation(msg string) *Notice {
	return &Notice{Kind: NoticeValidation, Title: "Error", Message: msg}
}
