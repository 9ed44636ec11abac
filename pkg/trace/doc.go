// Package trace records sorting runs frame by frame and stores them as JSON.
//
// # Overview
//
// A [Trace] holds the input, output and every intermediate state of one run,
// so runs can be inspected by other tools or checked later with [Trace.Replay].
// A [Recorder] builds a trace from a [runner.Runner] callback:
//
//	rec := trace.NewRecorder(sorter.Quick, input, 0)
//	res, err := r.RunTrace(ctx, sorter.Quick, input, rec.Record)
//	t := rec.Finish(res, 0)
//	err = trace.ExportJSON(t, "quick.json")
//
// # JSON Format
//
//	{
//	  "algorithm": "bubble",
//	  "input": [5, 2, 6],
//	  "output": [2, 5, 6],
//	  "steps": 6,
//	  "frames": [
//	    {"step": 1, "seq": [5, 2, 6], "special": [0, 1], "reason": "comparing"},
//	    {"step": 2, "seq": [2, 5, 6], "special": [0, 1], "reason": "switching"}
//	  ]
//	}
//
// Special pairs use -1 for "no position". Frames cover every step except the
// completing one, which never changes the sequence. "seed" is present for
// seeded bogo sort runs, and "truncated" when the recorder's frame limit was
// reached.
package trace
