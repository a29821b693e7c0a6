// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.1.0"

// Milestones:
// 0.1.0 - Orrery and star wall views, seven orbit modes, sidereal zodiac,
//         Horizons ephemeris with built-in fallback, headless WebSocket publisher
