// Package broker distributes decoded UI messages from a session to any number
// of subscribers.
//
// Design decisions:
//   - Context-first: publishing and subscribing accept a context for cancellation
//   - Topic-based: one topic per editor session keeps streams apart
//   - Hook integration: subscribers implement events.Hook
//   - Ordered delivery: each subscription has one forwarding goroutine
//   - Slow subscribers are dropped instead of stalling the session
//
// Interface hierarchy:
//   - Broker: Top-level interface for accessing topics
//     └── Topic: publish and subscribe
//     └── Subscription: unsubscribe
//
// Local keeps everything in process. NATS maps each topic onto a subject and
// carries messages as JSON, so subscribers can live in other processes.
//
// A Topic satisfies session.Sink:
//
//	b := broker.Local()
//	topic := b.Topic(ctx, "nvim-1")
//
//	sub, err := topic.Subscribe(ctx, events.LoggingHook())
//	if err != nil {
//	    return err
//	}
//	defer sub.Unsubscribe()
//
//	s := session.New(redraw.New(), topic)
//	return s.Run(ctx, conn)
package broker
