// Package ytdlp wraps the yt-dlp binary behind a metadata probe and an
// audio download operation with progress reporting.
//
// ResolveMetadata runs a non-downloading probe to fetch the source title and
// identifier. Download fetches the best available audio into the caller's
// output template, extracting to the configured audio container, and streams
// coarse progress events parsed from a structured progress template. Progress
// delivery is best effort and never blocks the download.
package ytdlp
