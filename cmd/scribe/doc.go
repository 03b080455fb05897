// Command scribe transcribes remote media URLs and local audio files into
// plain text, subtitle, and structured transcript documents.
package main
