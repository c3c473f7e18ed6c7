// Package pipeline drives a task through the clip-production stages: probe,
// audio extraction, transcription, segment selection, cutting, caption
// burning, and the final merge.
//
// The Coordinator owns one task at a time and runs its stages strictly in
// order; every external effect goes through a collaborator interface so tests
// run the whole state machine against fakes. The Runner turns the
// coordinator into a polling daemon that claims pending tasks from the queue
// under a file lock.
package pipeline
