// Package backend gives the compute backend a closed, uniform shape instead
// of the original's vtable of function pointers (DESIGN NOTES §9,
// "Duck-typed backend dispatch"). original_source dispatches between CPU,
// GPU, and MPI backends through struct compute_backend's function-pointer
// table (src/backend/compute-backend.h); the GPU and distributed backends
// are out of scope here (spec.md §1), so CPU is the only registered
// implementation, but the interface keeps the shape the notes ask for.
package backend

// Backend is the uniform surface every compute backend implements:
// Init prepares backend-wide state, Process runs one request, Cleanup
// releases resources, and Name identifies the backend for logs.
type Backend interface {
	Name() string
	Init() error
	Process(req Request) (Result, error)
	Cleanup() error
}

// Request carries the unit of work a backend should run. Kind names the
// run (single-image or pipeline) for logging; Run is the actual work,
// supplied by cmd/bmpconv so internal/worker and internal/pipeline stay
// backend-agnostic.
type Request struct {
	Kind string
	Run  func() error
}

// Result reports the outcome of processing a Request.
type Result struct {
	Err error
}
