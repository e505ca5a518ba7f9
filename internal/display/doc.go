// Package display renders user-facing console banners and handles
// terminal capability detection.
package display
