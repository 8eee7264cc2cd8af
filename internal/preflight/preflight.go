package preflight

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Request describes the import about to run.
type Request struct {
	Source       string
	Destination  string
	PendingBytes int64
	// DryRun skips the write and free-space checks.
	DryRun bool
}

// RunAll executes every check applicable to req.
func RunAll(req Request) []Result {
	results := []Result{CheckSourceReadable(req.Source)}
	if req.DryRun {
		return results
	}
	results = append(results,
		CheckDestinationWritable(req.Destination),
		CheckFreeSpace(req.Destination, req.PendingBytes),
	)
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
