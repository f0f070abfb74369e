// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// InputPaddingWidth is the horizontal padding inside the input box (Padding(0, 1))
	InputPaddingWidth = 2

	// SearchBarHeight is the input box (1 line plus borders) and the toggle line
	SearchBarHeight = 1 + BorderSize + 1

	// DefaultWrapWidth is the default width for text wrapping when the width is unknown
	DefaultWrapWidth = 80

	// MaxContentWidth caps the reading column on wide terminals
	MaxContentWidth = 100
)

// Input limits
const (
	// SearchInputCharLimit is the character limit of the query input
	SearchInputCharLimit = 2000

	// AdminInputCharLimit is the character limit of admin form inputs
	AdminInputCharLimit = 512

	// AdminFormWidth is the width of the admin panel forms
	AdminFormWidth = 60
)

// Timing
const (
	// CopiedIndicatorDuration is how long a copied source shows its mark
	CopiedIndicatorDuration = 2000 * time.Millisecond

	// DefaultFlashDuration is how long footer flash messages stay visible
	DefaultFlashDuration = 4 * time.Second

	// StopwatchInterval is the animation tick while a search is pending
	StopwatchInterval = 200 * time.Millisecond
)
