package espalier

// Version is the current release of the espalier library.
const Version = "0.2.0"
