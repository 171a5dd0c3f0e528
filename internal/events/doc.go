// Package events provides the reactive change streams the stores publish on.
//
// Each store owns one Subject per collection and pushes a fresh snapshot into
// it after every mutation, before the mutating call returns. Views subscribe
// to re-render on change without being coupled to the store internals.
//
// The primary component is Subject: a publish-on-mutate, replay-latest
// broadcast. New subscribers immediately receive the most recently published
// value (when one exists) and then every future value, in subscription order.
package events
