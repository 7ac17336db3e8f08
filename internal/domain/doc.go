// Package domain holds the value types shared by the rest of roost: offers,
// reviews, cities and the signed-in user. It has no I/O.
package domain
