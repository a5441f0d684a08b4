// Package bundle resolves remote document bundles (GitHub gists).
//
// An identifier supplied by a user, a link, or an open URI is first
// normalized with NormalizeID. A Resolver then fetches the bundle through
// a primary Channel and, on any failure, through a secondary Channel:
//
//	r := bundle.NewResolver(
//	    bundle.NewCLIChannel(runner, workdir),
//	    bundle.NewAPIChannel(client, 60),
//	    bundle.WithLogger(logger),
//	)
//	b, err := r.Fetch(ctx, bundle.NormalizeID(input))
//
// Both channels produce the same Bundle shape. The Resolver keeps no state
// between calls and is safe for concurrent use.
package bundle
