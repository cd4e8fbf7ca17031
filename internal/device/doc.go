// Package device models a piece of laboratory hardware that can be
// controlled through a generic parameter table.
//
// Every device carries an explicit table of named parameters, each with a
// typed getter and an optional setter and limiter, plus a state drawn from
// the device's declared state set. Parameters are registered into the table
// at construction and resolved by ordinary map lookup. A device also acts
// as a sync.Locker so a session can hold exclusive access while it works.
package device
