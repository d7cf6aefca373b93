package main

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#0969DA")
	accentColor  = lipgloss.Color("#2DA44E")
	dimColor     = lipgloss.Color("#6E7681")
	linkColor    = lipgloss.Color("#58A6FF")
	scoreColor   = lipgloss.Color("#F778BA")
	dateColor    = lipgloss.Color("#A371F7")
	markColor    = lipgloss.Color("#FFD33D")
	errorColor   = lipgloss.Color("#CF222E")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(linkColor).
			Underline(true)

	DateStyle = lipgloss.NewStyle().
			Foreground(dateColor).
			Italic(true)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(scoreColor).
			Bold(true)

	TagStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// HighlightStyle marks matched query terms.
	HighlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1F2328")).
			Background(markColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	CurrentStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			SetString("▶")
)
