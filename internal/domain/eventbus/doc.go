// Package eventbus provides the publish-subscribe primitive shared by the
// desktop kernel and its system services.
//
// Two flavours are offered:
//   - Bus: a single ordered listener list (manager lifecycle events, sound
//     status, filesystem changes)
//   - Keyed: one ordered listener list per key (window-scoped messages from an
//     application to its views)
//
// Delivery is synchronous and follows subscription order. Publish takes a
// snapshot of the listener list before invoking it, so a listener may
// unsubscribe itself or others while an event is in flight: listeners removed
// that way still receive the in-flight event and miss every later one.
// Listener panics are not recovered.
//
// Example Usage:
//
//	bus := eventbus.New[string]()
//	sub := bus.Subscribe(func(msg string) { fmt.Println(msg) })
//	bus.Publish("hello")
//	sub.Unsubscribe()
package eventbus
