// Package cli holds the plumbing shared by the studio command line:
// context-based configuration under ~/.giztoy/studio, request file
// loading, result output and terminal rendering of artifacts.
//
//	cfg, err := cli.LoadConfig("studio")
//	ctx, err := cfg.ResolveContext("")
//	client := hfinference.NewClient(ctx.Token(), hfinference.WithTimeout(ctx.TimeoutDuration()))
package cli
