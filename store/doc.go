// Package store provides observable value containers.
//
// A Store holds one value and notifies its subscribers when that value
// changes. Derive and its variants compose stores into read-only stores whose
// values are recomputed from their sources. All stores bound to a Dispatcher
// share its notification queue, so a cascade of updates is delivered as one
// ordered wave and a derivation recomputes only after every source that was
// invalidated in the wave has delivered its new value.
//
// Stores start lazily: a StartStopNotifier runs when the first subscriber
// arrives and its returned stop function runs when the last one leaves.
package store
