package backend

import "fmt"

// CPU is the only backend this spec implements (GPU and distributed/MPI
// backends are out of scope, per spec.md §1).
type CPU struct {
	initialized bool
}

// NewCPU constructs the CPU backend.
func NewCPU() *CPU { return &CPU{} }

func (c *CPU) Name() string { return "cpu" }

func (c *CPU) Init() error {
	c.initialized = true
	return nil
}

func (c *CPU) Process(req Request) (Result, error) {
	if !c.initialized {
		return Result{}, fmt.Errorf("backend: cpu backend used before Init")
	}
	if req.Run == nil {
		return Result{}, fmt.Errorf("backend: request %q has no work", req.Kind)
	}
	if err := req.Run(); err != nil {
		return Result{Err: err}, err
	}
	return Result{}, nil
}

func (c *CPU) Cleanup() error {
	c.initialized = false
	return nil
}
