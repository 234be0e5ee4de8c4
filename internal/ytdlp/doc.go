// Package ytdlp wraps the yt-dlp command-line downloader.
//
// The CLI client builds argument vectors (never shell strings), bounds each
// invocation with the caller's context deadline and a combined output
// capture cap, and parses metadata-mode JSON into a normalized VideoInfo.
// The Client interface exists so the job service and its tests can swap in
// fakes without touching a real binary.
package ytdlp
