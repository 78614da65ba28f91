package platform

// Package platform contains OS/platform integration: filesystem helpers,
// building upload selections from paths, and OS open/reveal.
