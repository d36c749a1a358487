package pamconfig

import (
	"context"
	"fmt"

	"github.com/xerolinux/xfprintd-gui/internal/errkind"
	"github.com/xerolinux/xfprintd-gui/internal/log"
	"github.com/xerolinux/xfprintd-gui/internal/services"
)

// Operation is one of the operations which can run on a batch of targets.
type Operation int

// Batch operations.
const (
	OpApply Operation = iota
	OpRemove
	OpCheck
)

func (op Operation) String() string {
	switch op {
	case OpApply:
		return "apply"
	case OpRemove:
		return "remove"
	case OpCheck:
		return "check"
	}
	panic(fmt.Sprintf("unknown operation %d", int(op)))
}

// Result is the outcome of an operation on one target.
type Result struct {
	Target services.Target
	// Applied is only meaningful for OpCheck.
	Applied bool
	Err     error
}

// Report gathers the results of an operation over several targets, in processing order.
type Report struct {
	Op      Operation
	Results []Result
}

// Run parses every identifier of args as a target and runs op on it.
// All targets are processed: a failure on one of them, including an unparsable identifier,
// does not prevent the next ones to run.
func (m *Manager) Run(ctx context.Context, op Operation, args []string) Report {
	r := Report{Op: op}
	for _, arg := range args {
		t, err := services.ParseTarget(arg)
		if err != nil {
			err = errkind.New(errkind.UnknownTarget, arg, err)
			log.Error(log.WithTarget(ctx, arg), err)
			r.Results = append(r.Results, Result{Target: services.Target{File: arg}, Err: err})
			continue
		}
		r.Results = append(r.Results, m.run(ctx, op, t))
	}
	return r
}

// ApplyAll applies the fingerprint configuration to every batch target.
func (m *Manager) ApplyAll(ctx context.Context) Report {
	return m.runAll(ctx, OpApply)
}

// RemoveAll removes the fingerprint configuration from every batch target.
func (m *Manager) RemoveAll(ctx context.Context) Report {
	return m.runAll(ctx, OpRemove)
}

// CheckAll checks the fingerprint configuration of every batch target.
func (m *Manager) CheckAll(ctx context.Context) Report {
	return m.runAll(ctx, OpCheck)
}

func (m *Manager) runAll(ctx context.Context, op Operation) Report {
	r := Report{Op: op}
	for _, t := range m.targets {
		r.Results = append(r.Results, m.run(ctx, op, t))
	}
	return r
}

func (m *Manager) run(ctx context.Context, op Operation, t services.Target) Result {
	res := Result{Target: t}
	switch op {
	case OpApply:
		res.Err = m.Apply(ctx, t)
	case OpRemove:
		res.Err = m.Remove(ctx, t)
	case OpCheck:
		res.Applied, res.Err = m.Check(ctx, t)
	}
	if res.Err != nil {
		log.Error(log.WithTarget(ctx, t.File), res.Err)
	}
	return res
}

// Exit codes of a report.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitCheckError  = 2
	ExitPermissions = 126
)

// ExitCode summarizes the report as a process exit code:
//   - apply and remove: ExitFailure if any target failed;
//   - check: ExitCheckError if any target could not be checked, else ExitFailure if any target is
//     not applied.
func (r Report) ExitCode() int {
	code := ExitOK
	for _, res := range r.Results {
		switch {
		case res.Err != nil && r.Op == OpCheck:
			return ExitCheckError
		case res.Err != nil:
			code = ExitFailure
		case r.Op == OpCheck && !res.Applied:
			code = ExitFailure
		}
	}
	return code
}

// Lines renders one status line per target, in the form "<status-word>: <detail>".
// Status words are parsed by callers and are never translated.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		lines = append(lines, r.line(res))
	}
	return lines
}

func (r Report) line(res Result) string {
	f := res.Target.File
	switch r.Op {
	case OpApply:
		if res.Err != nil {
			return fmt.Sprintf("Error: applying configuration to %s: %v", f, res.Err)
		}
		return fmt.Sprintf("Success: applied configuration to %s", f)
	case OpRemove:
		if res.Err != nil {
			return fmt.Sprintf("Error: removing configuration from %s: %v", f, res.Err)
		}
		return fmt.Sprintf("Success: removed configuration from %s", f)
	case OpCheck:
		if res.Err != nil {
			return fmt.Sprintf("Error: checking %s: %v", f, res.Err)
		}
		if res.Applied {
			return fmt.Sprintf("applied: %s", f)
		}
		return fmt.Sprintf("not-applied: %s", f)
	}
	panic(fmt.Sprintf("unknown operation %d", int(r.Op)))
}
