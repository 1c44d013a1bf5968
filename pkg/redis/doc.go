// Package redis connects to the Redis server that can hold published rule
// documents and wraps it in a small prefixed key-value Store.
//
// It builds on go-redis and adds:
//
//   - Connect, which retries the initial ping using Config.
//   - Store, a prefixed Get/Set/Delete wrapper used by the rule source and
//     the publish command.
//   - Healthcheck, for liveness and readiness probes.
//
// Config is populated from the environment through pkg/config:
//
//	cfg := config.MustLoad[redis.Config](config.WithPrefix("FORMKIT_"))
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewStore(client, cfg.KeyPrefix)
//	doc, err := store.Get(ctx, "main-form")
//	if errors.Is(err, redis.ErrKeyNotFound) {
//	    // not published yet
//	}
//
// Errors wrap the underlying go-redis errors with errors.Join, so both the
// sentinel and the driver error match with errors.Is.
package redis
