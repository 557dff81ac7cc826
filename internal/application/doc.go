// Package application provides dependency wiring. It receives the resolved
// settings once, builds the components that consume them, and renders the
// settings for inspection, keeping the main package focused on CLI parsing.
package application
