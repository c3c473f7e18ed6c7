// Command lingoclip is the CLI for the clip pipeline: process a video
// inline, manage the task queue, or run the polling daemon.
package main
