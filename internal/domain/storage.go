package domain

// KeyPrefix namespaces every storage key written by this service. The
// composition root overrides it from config before any repository is built.
var KeyPrefix = "screenfind:"
