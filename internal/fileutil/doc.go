// Package fileutil provides filesystem scanning helpers for locating
// resolved dependency artifacts on disk.
package fileutil
