// Package ui provides the user interface components for the kavosh TUI.
//
// # Overview
//
// The ui package implements the visual components of kavosh using the Bubble Tea
// framework and Lipgloss styling library. Components are plain structs with
// Update and View methods; the app package owns them and routes messages.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): title, backend health, theme        │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   AnswerView (viewport)                             │
//	│   welcome / searching / error / answer + sources    │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ SearchBar: query input + web search toggle          │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line): key bindings or a flash message    │
//	└─────────────────────────────────────────────────────┘
//
// The admin screen replaces the answer view and search bar with AdminPanel.
//
// # Components
//
// Header: title with a gradient background, backend health and theme mode.
//
// SearchBar: the draft query and the web search toggle. Enter is the only
// submit intent; the bar is locked while a search is pending.
//
// AnswerView: renders a search.Session. Answers go through the safe
// markdown parser in internal/markdown; sources are a numbered list where
// web URLs become OSC 8 hyperlinks and each item can be copied.
//
// CopyTracker: per-source "copied" marks with independent timers.
//
// AdminPanel: huh forms bound to an admin.Form.
//
// # Styles
//
// Styles live in styles.go and are rebuilt from the active palette by
// regenerateStyles. ApplyMode switches palettes and is subscribed to the
// theme.Controller by the app, so the style set always follows the mode.
package ui
