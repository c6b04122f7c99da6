// Package shutdown runs cleanup when spot-cli exits, whether the command
// finished or the user pressed Ctrl-C.
//
//	ctx, stop := shutdown.NotifyContext(context.Background())
//	defer stop()
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(store.Close)
//	defer h.Shutdown()
package shutdown
