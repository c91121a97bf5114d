package tui

// Color constants for the studylog TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Replies, clock digits
	ColorSecondaryText = "#B1B8C7" // Echoed input, labels
	ColorDisabledText  = "#6D7383" // Unset timestamps
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Header, prompt, panel border
	ColorAccentBright = "#A78BFA" // Running activity

	// Activity Colors
	ColorStudy = "#22C55E" // Study clock
	ColorGame  = "#F59E0B" // Game clock

	// State Colors
	ColorError = "#EF4444" // Invalid commands, store failures
)
