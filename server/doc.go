// Package server provides the HTTP server for webdemo, backed by Gin with
// h2c support so HTTP/2 cleartext clients work on the same port.
//
// The server is created unconfigured; callers apply the standard middleware
// stack and register routes before Start:
//
//	srv := server.New(cfg, log)
//	srv.ApplyMiddleware()
//	srv.RegisterDefaultEndpoints("webdemo", nil)
//	// register application routes on srv.GinEngine()
//	if err := srv.Start(ctx); err != nil { ... }
//	defer srv.Stop(ctx)
package server
