// Package replayguard provides single-use nonce tracking: the gateway's
// defense against a captured, still-valid signed request being resubmitted.
//
// Guard.CheckAndRecord is the sole entry point: it performs
// an atomic test-and-insert under one lock, returning Fresh the first time a
// nonce is seen and Replay on every subsequent submission within NonceTTL. A
// background goroutine started by NewGuard sweeps the membership table every
// 60 seconds, removing entries older than NonceTTL; Guard.Stop cancels it.
package replayguard
