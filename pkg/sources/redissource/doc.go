/*
Package redissource turns Redis pub/sub into an Observable source and
publishes Observable streams back to Redis.

Subscribe opens one PubSub connection per subscription:

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	taps := redissource.Subscribe(client, redissource.Config{
		Channels: []string{"taps"},
	})

	batches := observable.Buffer(taps, 3*time.Second)
	d := batches.Subscribe(ctx, observable.ObserverFuncs[[]redissource.Message]{
		Next: func(b []redissource.Message) { fmt.Println(len(b), "taps") },
	})
	defer d.Dispose()

The subscription is confirmed by the server before Subscribe returns to
the producer, so messages published after that point are not lost.
Disposing closes the connection.

Publish is the opposite direction. It blocks until the stream ends:

	err := redissource.Publish(ctx, client, "queries", observable.Just("a", "b"))
*/
package redissource
