package ui

import (
	"autopick/internal/eventbus"
)

// EventMsg wraps a domain event forwarded from the bus to the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause rendering while the pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume rendering after the pager exits
type resumeRenderingMsg struct{}
