// Package vidgraph is the data-access core of a content-sharing platform.
//
// It materializes a social/media graph (users, videos, comments, tweets,
// likes, subscriptions, playlists) stored as independent documents into
// denormalized joined views, and coordinates mutations across that graph
// together with an external blob store holding the video and image assets.
//
// The package exposes a Service built from a Repository (entity store
// driver) and a BlobStore (binary-object store client):
//
//	svc, err := vidgraph.New(
//		vidgraph.WithRepository(memory.New()),
//		vidgraph.WithBlobStore(memorystorage.New()),
//	)
//
// Repositories live under repo/ (in-memory and Postgres), blob store
// backends under storage/ (in-memory, filesystem, S3). The api/
// subpackage and cmd/server wire the service behind HTTP; both are thin
// plumbing over the operations defined here.
package vidgraph
