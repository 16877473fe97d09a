// Package resource bounds the work a process spends reading ranking databases.
//
// A Controller governs three resources:
//
//   - Decode workers: how many columns may be decoded concurrently. This is the
//     process-wide thread budget; every database opened with the same
//     Controller shares it.
//   - Memory: bytes reserved by resident (in-memory) databases. Tracking only,
//     unless a hard limit is configured.
//   - IO: bytes read from database files, counted and optionally limited by a
//     token bucket.
//
// The host application creates one Controller at startup and hands it to every
// database it opens:
//
//	rc := resource.NewController(resource.Config{
//	    DecodeWorkers:    8,
//	    MemoryLimitBytes: 16 << 30,
//	})
//
// # Nil Safety
//
// All methods handle a nil Controller: memory and IO become unlimited and the
// decode budget is a single worker.
package resource
