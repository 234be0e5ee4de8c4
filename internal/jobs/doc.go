// Package jobs implements the download job service.
//
// Each request gets a UUID-named directory under the downloads root; the
// external downloader writes into it, the service inspects it once to find
// the artifact, and failure paths remove it wholesale so no partial output
// survives. A bounded slot pool caps simultaneous downloader processes, and
// Sweep retires directories older than the configured retention.
//
// State lives only in the filesystem and process memory; there is no job
// record store.
package jobs
