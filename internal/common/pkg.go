package common

// UnknownStr is the display name for values outside a known enumeration.
const UnknownStr = "unknown"
