// Package wizard implements the service configuration wizard as an explicit
// state machine: Idle, Armed (service tapped once), Active (service
// committed, collecting attributes) and Results. Sessions are plain values
// owned by the caller; the Machine only transforms them.
package wizard
