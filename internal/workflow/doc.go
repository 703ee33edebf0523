// Package workflow drives the offline map download: the storage permission
// request, the readiness check of the offline maps folder, the confirmation
// dialog, the hand-off to the download manager and the pending download
// bookkeeping.
//
// All transitions run on the caller's goroutine. Presenters and permission
// requesters may answer synchronously; answers given while a transition is
// still running are queued and handled afterwards.
package workflow
